/*
Package direct is the connections/1.0 protocol for the callers which drive
the handshake in one go, e.g. in the same process with a direct transport.
Every state is its own type and the transitions are methods of the state
they are legal in, so an illegal transition doesn't compile.

	inviter: NewInviter -> Invited -> Requested -> Responded -> Completed
	invitee: NewInvitee -> Invited -> Requested -> Responded -> Completed

There is no routing or problem report handling here. Errors are returned to
the caller, which drops the handshake.
*/
package direct

import (
	"github.com/findy-network/findy-aries-fsm/protocol/connection"
	"github.com/findy-network/findy-aries-fsm/std/did"
)

// Conn is the common data of all states.
type Conn struct {
	SourceID string                  `json:"source_id"`
	ThreadID string                  `json:"thread_id"`
	Pairwise connection.PairwiseInfo `json:"pairwise_info"`
}

// Completed is the established connection, the last state of both roles.
type Completed struct {
	Conn
	TheirDIDDoc *did.Doc `json:"their_did_doc"`
}

// TheirVerKey returns the key we send to.
func (c Completed) TheirVerKey() string {
	if c.TheirDIDDoc == nil {
		return ""
	}
	if keys := c.TheirDIDDoc.RecipientKeys(); len(keys) > 0 {
		return keys[0]
	}
	return ""
}
