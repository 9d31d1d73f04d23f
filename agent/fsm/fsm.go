/*
Package fsm is the shared driver of the protocol state machines. It holds the
routing predicate which selects the message to handle from a batch of
pending messages, the thread check all the machines run first, the status
codes of the terminal states, and the persistence envelope of the machines.

Every protocol state machine is a value {SourceID, ThreadID, State}, where
State is a sealed interface implemented by one struct per protocol state.
The state machines don't lock anything. Callers serialize the transitions of
the same thread, see agent/psm.
*/
package fsm

import (
	"context"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/golang/glog"
)

// Sender sends the protocol message to the other end of the connection. The
// transport is the caller's business.
type Sender func(ctx context.Context, msg aries.Message) error

// Rule is the legal message set of the state.
type Rule struct {
	Kinds []aries.Kind

	// Threaded states accept only messages of their own thread.
	Threaded bool
}

// Table maps state names to their rules. States without a rule don't accept
// any messages.
type Table map[string]Rule

// Accepts returns true if the message can progress the state.
func (t Table) Accepts(stateName, threadID string, m aries.Message) bool {
	rule, ok := t[stateName]
	if !ok || m == nil {
		return false
	}
	if !hasKind(rule.Kinds, m.Kind()) {
		return false
	}
	return !rule.Threaded || aries.ThreadIDMatches(m, threadID)
}

// Find returns at most one message of the batch which can progress the state.
// If there are many, the winner is unspecified.
func (t Table) Find(
	stateName, threadID string,
	msgs map[string]aries.Message,
) (
	id string,
	m aries.Message,
	found bool,
) {
	for id, m := range msgs {
		if t.Accepts(stateName, threadID, m) {
			glog.V(3).Infof("state %s handles %s (%s)", stateName, m.Kind(), id)
			return id, m, true
		}
	}
	return "", nil, false
}

func hasKind(kinds []aries.Kind, k aries.Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// CheckThread returns ErrThreadMismatch if the message carries a thread which
// isn't the threadID. Messages without ~thread support pass.
func CheckThread(threadID string, m aries.Message) error {
	thid, ok := aries.ThreadID(m)
	if !ok || thid == threadID {
		return nil
	}
	return core.ThreadMismatch(threadID, thid)
}

// TrySend sends the message when it's best effort: the failure is only
// logged.
func TrySend(ctx context.Context, send Sender, msg aries.Message) {
	if send == nil {
		glog.Warningln("no sender for", msg.Kind())
		return
	}
	if err := send(ctx, msg); err != nil {
		glog.Errorf("best effort send %s: %v", msg.Kind(), err)
	}
}
