package cmd

import (
	"fmt"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/agent/psm"
	"github.com/findy-network/findy-aries-fsm/protocol/connection/invitee"
	"github.com/findy-network/findy-aries-fsm/protocol/connection/inviter"
	"github.com/findy-network/findy-aries-fsm/protocol/issuecredential/holder"
	"github.com/findy-network/findy-aries-fsm/protocol/issuecredential/issuer"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof/prover"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof/verifier"
)

type findFunc func(msgs map[string]aries.Message) (string, aries.Message, bool)

// machineOf returns the empty machine of the role and its routing
// predicate.
func machineOf(role psm.Role) (psm.Machine, findFunc, error) {
	switch role {
	case psm.RoleInviter:
		sm := new(inviter.SM)
		return sm, sm.FindMessageToUpdateState, nil
	case psm.RoleInvitee:
		sm := new(invitee.SM)
		return sm, sm.FindMessageToUpdateState, nil
	case psm.RoleIssuer:
		sm := new(issuer.SM)
		return sm, sm.FindMessageToHandle, nil
	case psm.RoleHolder:
		sm := new(holder.SM)
		return sm, sm.FindMessageToHandle, nil
	case psm.RoleVerifier:
		sm := new(verifier.SM)
		return sm, sm.FindMessageToHandle, nil
	case psm.RoleProver:
		sm := new(prover.SM)
		return sm, sm.FindMessageToHandle, nil
	}
	return nil, nil, fmt.Errorf("unknown role %q", role)
}
