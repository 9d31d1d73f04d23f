// Package discovery implements the messages of Aries RFC 0031 discover
// features.
package discovery

import (
	"strings"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
)

func init() {
	aries.Creator.Add(aries.KindQuery, aries.Unmarshaler[Query]())
	aries.Creator.Add(aries.KindDisclose, aries.Unmarshaler[Disclose]())
}

// Query starts its own thread and it doesn't carry ~thread.
type Query struct {
	aries.Header
	Query   string `json:"query"`
	Comment string `json:"comment,omitempty"`
}

func (*Query) Kind() aries.Kind {
	return aries.KindQuery
}

func NewQuery(query string) *Query {
	return &Query{
		Header: aries.NewHeader(aries.KindQuery),
		Query:  query,
	}
}

type Disclose struct {
	aries.Threaded
	Protocols []ProtocolDescriptor `json:"protocols"`
}

func (*Disclose) Kind() aries.Kind {
	return aries.KindDisclose
}

type ProtocolDescriptor struct {
	PID   string   `json:"pid"`
	Roles []string `json:"roles,omitempty"`
}

// NewDisclose answers to the query with the protocols matching to it. The
// query is a protocol ID prefix which may end with '*'.
func NewDisclose(q *Query, supported []ProtocolDescriptor) *Disclose {
	prefix := strings.TrimSuffix(q.Query, "*")
	protocols := make([]ProtocolDescriptor, 0, len(supported))
	for _, p := range supported {
		if strings.HasPrefix(p.PID, prefix) {
			protocols = append(protocols, p)
		}
	}
	return &Disclose{
		Threaded:  aries.NewThreaded(aries.KindDisclose, q.ID, ""),
		Protocols: protocols,
	}
}
