// Package bus delivers the state changes of the stored protocol state
// machines to the listeners of the agent.
package bus

import (
	"sync"

	"github.com/golang/glog"
	"github.com/lainio/err2/assert"
)

// AllAgents is the listener key which gets the notifications of every agent.
const AllAgents = "*"

// Notify is the state change of one machine.
type Notify struct {
	DID       string
	ThreadID  string
	Role      string
	StateName string
	Terminal  bool
	Timestamp int64
}

type StateChan chan Notify

// buffer size of a listener channel
const chanSize = 10

type Station struct {
	lk        sync.Mutex
	listeners map[string]StateChan
}

func New() *Station {
	return &Station{listeners: make(map[string]StateChan)}
}

// AddListener starts listening the machines of the DID. There can be one
// listener per DID.
func (s *Station) AddListener(did string) StateChan {
	s.lk.Lock()
	defer s.lk.Unlock()

	_, alreadyExists := s.listeners[did]
	assert.That(!alreadyExists, "listener %s already exists", did)

	c := make(StateChan, chanSize)
	s.listeners[did] = c
	return c
}

// RmListener stops the listening and closes the channel.
func (s *Station) RmListener(did string) {
	s.lk.Lock()
	defer s.lk.Unlock()

	if c, ok := s.listeners[did]; ok {
		delete(s.listeners, did)
		close(c)
	}
}

// Broadcast sends the notification to the listeners of its DID and
// AllAgents. A full listener doesn't block the sender, the notification is
// dropped for it.
func (s *Station) Broadcast(n Notify) {
	s.lk.Lock()
	defer s.lk.Unlock()

	for _, key := range []string{n.DID, AllAgents} {
		c, ok := s.listeners[key]
		if !ok {
			continue
		}
		select {
		case c <- n:
		default:
			glog.Warningf("listener %s full, %s|%s dropped", key, n.DID, n.ThreadID)
		}
	}
}
