// Package common implements the notification protocol messages, ack and
// problem-report, which the other protocols adopt.
package common

import (
	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/pltype"
)

func init() {
	aries.Creator.Add(aries.KindAck, aries.Unmarshaler[Ack]())
	aries.Creator.Add(aries.KindProblemReport, aries.Unmarshaler[ProblemReport]())
}

// Ack acknowledgement struct
type Ack struct {
	aries.Threaded
	Status string `json:"status,omitempty"`
}

func (a *Ack) Kind() aries.Kind {
	return aries.KindAck
}

// NewAck builds an OK ack for the thread. The k is the kind of the ack since
// the protocols adopt notification ack with their own types.
func NewAck(k aries.Kind, thid string) Ack {
	return Ack{
		Threaded: aries.NewThreaded(k, thid, ""),
		Status:   pltype.AckStatusOK,
	}
}

func (a *Ack) IsOK() bool {
	return a.Status == pltype.AckStatusOK
}
