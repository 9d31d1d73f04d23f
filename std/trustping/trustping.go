// Package trustping implements the messages of Aries RFC 0048 trust ping.
package trustping

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
)

func init() {
	aries.Creator.Add(aries.KindPing, aries.Unmarshaler[Ping]())
	aries.Creator.Add(aries.KindPingResponse, aries.Unmarshaler[PingResponse]())
}

type Ping struct {
	aries.Threaded
	Comment           string `json:"comment,omitempty"`
	ResponseRequested bool   `json:"response_requested"`
}

func (*Ping) Kind() aries.Kind {
	return aries.KindPing
}

// NewPing builds a ping in the thread. Empty thid starts a new thread.
func NewPing(thid string, responseRequested bool) *Ping {
	return &Ping{
		Threaded:          aries.NewThreaded(aries.KindPing, thid, ""),
		ResponseRequested: responseRequested,
	}
}

type PingResponse struct {
	aries.Threaded
	Comment string `json:"comment,omitempty"`
}

func (*PingResponse) Kind() aries.Kind {
	return aries.KindPingResponse
}

// NewResponse builds the response to the ping, it's in the ping's thread.
func NewResponse(ping *Ping) *PingResponse {
	thid, _ := aries.ThreadID(ping)
	return &PingResponse{
		Threaded: aries.NewThreaded(aries.KindPingResponse, thid, ""),
	}
}
