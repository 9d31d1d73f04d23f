package discovery

import (
	"testing"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/stretchr/testify/require"
)

func TestDisclose(t *testing.T) {
	q := NewQuery("did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/issue-credential/*")
	require.False(t, aries.ThreadIDMatches(q, q.ID), "query doesn't carry thread")

	supported := []ProtocolDescriptor{
		{PID: "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/connections/1.0"},
		{PID: "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/issue-credential/1.0", Roles: []string{"holder"}},
	}
	d := NewDisclose(q, supported)
	require.Len(t, d.Protocols, 1)
	require.Equal(t, supported[1], d.Protocols[0])
	require.True(t, aries.ThreadIDMatches(d, q.ID))

	data, err := aries.Marshal(d)
	require.NoError(t, err)
	m, err := aries.Parse(data)
	require.NoError(t, err)
	require.Equal(t, d, m)
}
