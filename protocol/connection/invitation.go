package connection

import (
	"context"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/core"
	stdconn "github.com/findy-network/findy-aries-fsm/std/connection"
	"github.com/findy-network/findy-aries-fsm/std/did"
	"github.com/findy-network/findy-aries-fsm/std/outofband"
	"github.com/lainio/err2"
)

// Invitation is one of the invitation flavors the invitee can accept. Only
// one of the fields is set.
type Invitation struct {
	Pairwise  *stdconn.PairwiseInvitation `json:"pairwise,omitempty"`
	Public    *stdconn.PublicInvitation   `json:"public,omitempty"`
	OutOfBand *outofband.Invitation       `json:"out_of_band,omitempty"`
}

// InvitationFrom wraps the invitation message.
func InvitationFrom(m aries.Message) (Invitation, error) {
	switch inv := m.(type) {
	case *stdconn.PairwiseInvitation:
		return Invitation{Pairwise: inv}, nil
	case *stdconn.PublicInvitation:
		return Invitation{Public: inv}, nil
	case *outofband.Invitation:
		return Invitation{OutOfBand: inv}, nil
	}
	return Invitation{}, core.InvalidState("%s isn't an invitation", m.Kind())
}

// Message returns the invitation message.
func (i Invitation) Message() aries.Message {
	switch {
	case i.Pairwise != nil:
		return i.Pairwise
	case i.Public != nil:
		return i.Public
	case i.OutOfBand != nil:
		return i.OutOfBand
	}
	return nil
}

func (i Invitation) ID() string {
	if m := i.Message(); m != nil {
		return m.MsgID()
	}
	return ""
}

func (i Invitation) Label() string {
	switch {
	case i.Pairwise != nil:
		return i.Pairwise.Label
	case i.Public != nil:
		return i.Public.Label
	case i.OutOfBand != nil:
		return i.OutOfBand.Label
	}
	return ""
}

// RequestThread returns the thread of the connection request to this
// invitation. The pairwise invitation's ID is the thread ID. Public and
// out-of-band invitations start a new thread with the request's ID, and the
// invitation is the parent thread.
func (i Invitation) RequestThread(requestID string) (thid, pthid string) {
	if i.Pairwise != nil {
		return i.Pairwise.ID, ""
	}
	return requestID, i.ID()
}

// BootstrapDoc returns the DID doc of the inviter. Public DIDs are resolved
// with the resolver.
func (i Invitation) BootstrapDoc(ctx context.Context, resolver DocResolver) (doc *did.Doc, err error) {
	defer err2.Handle(&err, "invitation %s bootstrap doc", i.ID())

	switch {
	case i.Pairwise != nil:
		doc = did.NewDoc(i.Pairwise.ID, i.Pairwise.RecipientKeys,
			i.Pairwise.RoutingKeys, i.Pairwise.ServiceEndpoint)
	case i.Public != nil:
		doc, err = resolve(ctx, resolver, i.Public.DID)
	case i.OutOfBand != nil:
		doc, err = i.outOfBandDoc(ctx, resolver)
	default:
		return nil, core.InvalidState("empty invitation")
	}
	if err != nil {
		return nil, err
	}
	if len(doc.RecipientKeys()) == 0 {
		return nil, did.ErrInvalidDoc
	}
	return doc, nil
}

func (i Invitation) outOfBandDoc(ctx context.Context, resolver DocResolver) (*did.Doc, error) {
	if len(i.OutOfBand.Services) == 0 {
		return nil, core.InvalidState("out-of-band invitation without services")
	}
	service := i.OutOfBand.Services[0]
	if service.Inline == nil {
		return resolve(ctx, resolver, service.DID)
	}
	return service.Doc(i.OutOfBand.ID)
}

func resolve(ctx context.Context, resolver DocResolver, pubDID string) (*did.Doc, error) {
	if resolver == nil {
		return nil, core.InvalidState("resolver missing for public DID %s", pubDID)
	}
	return resolver.ResolveDoc(ctx, pubDID)
}
