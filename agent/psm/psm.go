// Package psm persists the protocol state machines between protocol turns.
// A machine is rehydrated from its record when a message of its thread
// arrives, stepped, and stored back.
package psm

import (
	"encoding/json"
	"time"

	"github.com/findy-network/findy-common-go/dto"
)

// Role tells which side of which protocol the stored machine is.
type Role string

const (
	RoleInviter  Role = "inviter"
	RoleInvitee  Role = "invitee"
	RoleIssuer   Role = "issuer"
	RoleHolder   Role = "holder"
	RoleVerifier Role = "verifier"
	RoleProver   Role = "prover"
)

// Machine is what every protocol state machine offers for the store.
type Machine interface {
	json.Marshaler
	json.Unmarshaler

	StateName() string
	IsTerminalState() bool
}

// StateKey is the primary key of the machine: the agent's DID and the
// thread ID of the protocol.
type StateKey struct {
	DID   string
	Nonce string
}

func (key StateKey) Data() []byte {
	return []byte(key.String())
}

func (key StateKey) String() string {
	return key.DID + "|" + key.Nonce
}

// Record is the stored machine. The machine itself is in its JSON form,
// the other fields are for listing without unmarshaling it.
type Record struct {
	Key       StateKey
	Role      Role
	StateName string
	Terminal  bool

	// Timestamp is the Unix time of the last update.
	Timestamp int64

	Machine []byte
}

func NewRecord(key StateKey, role Role, m Machine) (r *Record, err error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return &Record{
		Key:       key,
		Role:      role,
		StateName: m.StateName(),
		Terminal:  m.IsTerminalState(),
		Timestamp: time.Now().Unix(),
		Machine:   data,
	}, nil
}

func NewRecordFromData(d []byte) *Record {
	r := &Record{}
	dto.FromGOB(d, r)
	return r
}

func (r *Record) Data() []byte {
	return dto.ToGOB(r)
}

// Load unmarshals the stored machine to m.
func (r *Record) Load(m Machine) error {
	return m.UnmarshalJSON(r.Machine)
}
