package fsm

import (
	"encoding/json"

	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Named is a state which knows its name. The name is the key of the state in
// the persisted form.
type Named interface {
	Name() string
}

// Envelope is the persisted form of the state machine:
//
//	{"source_id": "...", "thread_id": "...", "state": {"OfferSent": {...}}}
//
// State machines which have more fields embed Envelope to their own JSON
// struct.
type Envelope struct {
	SourceID string                     `json:"source_id"`
	ThreadID string                     `json:"thread_id"`
	State    map[string]json.RawMessage `json:"state"`
}

// NewEnvelope builds the envelope of the state machine.
func NewEnvelope(sourceID, threadID string, s Named) (e Envelope, err error) {
	defer err2.Handle(&err, "envelope %s", s.Name())

	state := try.To1(json.Marshal(s))
	return Envelope{
		SourceID: sourceID,
		ThreadID: threadID,
		State:    map[string]json.RawMessage{s.Name(): state},
	}, nil
}

// Registry builds empty states by their names for the unmarshaling.
type Registry[S Named] map[string]func() S

// StateOf builds the state from the envelope.
func StateOf[S Named](e Envelope, states Registry[S]) (s S, err error) {
	defer err2.Handle(&err, "state from envelope")

	if len(e.State) != 1 {
		return s, core.InvalidJSON("exactly one state expected, got %d", len(e.State))
	}
	for name, raw := range e.State {
		factor, ok := states[name]
		if !ok {
			return s, core.InvalidJSON("unknown state %q", name)
		}
		s = factor()
		if json.Unmarshal(raw, s) != nil {
			return s, core.InvalidJSON("state %s", name)
		}
	}
	return s, nil
}

// Marshal serializes the state machine to its envelope.
func Marshal(sourceID, threadID string, s Named) (d []byte, err error) {
	defer err2.Handle(&err, "marshal")

	return try.To1(json.Marshal(try.To1(NewEnvelope(sourceID, threadID, s)))), nil
}

// Unmarshal builds the state machine's fields from the envelope.
func Unmarshal[S Named](
	data []byte,
	states Registry[S],
) (
	sourceID, threadID string,
	s S,
	err error,
) {
	defer err2.Handle(&err, "unmarshal state machine")

	var e Envelope
	if json.Unmarshal(data, &e) != nil {
		return "", "", s, core.InvalidJSON("state machine envelope")
	}
	s = try.To1(StateOf(e, states))
	return e.SourceID, e.ThreadID, s, nil
}
