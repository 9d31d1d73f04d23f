package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStation_Broadcast(t *testing.T) {
	s := New()
	agent := s.AddListener("DID1")
	all := s.AddListener(AllAgents)

	s.Broadcast(Notify{DID: "DID1", ThreadID: "1", StateName: "Finished", Terminal: true})
	s.Broadcast(Notify{DID: "DID2", ThreadID: "2"})

	n := <-agent
	assert.Equal(t, "1", n.ThreadID)
	assert.True(t, n.Terminal)
	assert.Equal(t, "1", (<-all).ThreadID)
	assert.Equal(t, "2", (<-all).ThreadID)
	assert.Len(t, agent, 0)

	s.RmListener("DID1")
	_, open := <-agent
	assert.False(t, open)
	s.RmListener("DID1")
	s.Broadcast(Notify{DID: "DID1"})
	assert.Equal(t, "DID1", (<-all).DID)
}

func TestStation_FullListener(t *testing.T) {
	s := New()
	c := s.AddListener("DID1")
	for i := 0; i < chanSize+5; i++ {
		s.Broadcast(Notify{DID: "DID1"})
	}
	require.Len(t, c, chanSize)
}
