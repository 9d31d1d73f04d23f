package psm

import (
	"context"
	"errors"
	"flag"
	"os"
	"sync"
	"testing"

	"github.com/findy-network/findy-aries-fsm/agent/bus"
	"github.com/findy-network/findy-aries-fsm/protocol/presentproof/verifier"
	stdpp "github.com/findy-network/findy-aries-fsm/std/presentproof"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

const (
	dbPath       = "db_test.bolt"
	cipherDBPath = "cipher-db_test.bolt"
	hexKey       = "15308490f1e4026284594dd08d31291bc8ef2aeac730d0daf6ff87bb92d4336c"

	proofReq = `{"name":"age","version":"1.0","nonce":"1",` +
		`"requested_attributes":{},"requested_predicates":{}}`
)

var (
	testStore   *Store
	cipherStore *Store
)

func TestMain(m *testing.M) {
	setUp()
	code := m.Run()
	tearDown()
	os.Exit(code)
}

func setUp() {
	// We don't want logs on file with tests
	try.To(flag.Set("logtostderr", "true"))

	testStore = try.To1(Open(Config{Filename: dbPath}))
	cipherStore = try.To1(Open(Config{Filename: cipherDBPath, Key: hexKey}))
}

func tearDown() {
	_ = testStore.Close()
	_ = cipherStore.Close()

	os.Remove(dbPath)
	os.Remove(cipherDBPath)
}

func TestStore_Add(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	sm := verifier.New("verifier")
	tests := []struct {
		name  string
		store *Store
	}{
		{"add", testStore},
		{"add with cipher", cipherStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()

			key := StateKey{DID: "TEST", Nonce: tt.name}
			assert.NoError(tt.store.Add(key, RoleVerifier, sm))

			r, err := tt.store.Get(key)
			assert.NoError(err)
			assert.Equal(r.Key, key)
			assert.Equal(r.Role, RoleVerifier)
			assert.Equal(r.StateName, verifier.StateInitial)
			assert.That(!r.Terminal)

			var got verifier.SM
			assert.NoError(r.Load(&got))
			assert.DeepEqual(&got, sm)
		})
	}
}

func TestStore_Station(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	station := bus.New()
	listener := station.AddListener("STATION")
	testStore.Station = station
	defer func() { testStore.Station = nil }()

	key := StateKey{DID: "STATION", Nonce: "1"}
	assert.NoError(testStore.Add(key, RoleVerifier, verifier.New("verifier")))
	assert.NoError(testStore.Add(StateKey{DID: "OTHER", Nonce: "1"}, RoleVerifier, verifier.New("verifier")))

	n := <-listener
	assert.Equal(n.ThreadID, "1")
	assert.Equal(n.Role, string(RoleVerifier))
	assert.Equal(n.StateName, verifier.StateInitial)
	assert.That(len(listener) == 0)
}

func TestStore_GetNotFound(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	_, err := testStore.Get(StateKey{DID: "TEST", Nonce: "missing"})
	assert.Error(err)
	assert.That(errors.Is(err, storage.ErrDataNotFound))
}

func TestStore_Rm(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	key := StateKey{DID: "TEST", Nonce: "rm"}
	assert.NoError(testStore.Add(key, RoleVerifier, verifier.New("verifier")))
	assert.NoError(testStore.Rm(key))

	_, err := testStore.Get(key)
	assert.That(errors.Is(err, storage.ErrDataNotFound))
}

func TestStore_All(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	const did = "ALL"
	sm := verifier.New("verifier")
	declined, err := verifier.FromProposal("verifier", stdpp.NewPropose("", "", nil)).
		Step(context.Background(), verifier.RejectPresentationProposal{}, verifier.Deps{})
	assert.NoError(err)
	assert.That(declined.IsTerminalState())

	assert.NoError(testStore.Add(StateKey{DID: did, Nonce: "1"}, RoleVerifier, sm))
	assert.NoError(testStore.Add(StateKey{DID: did, Nonce: "2"}, RoleVerifier, declined))
	assert.NoError(testStore.Add(StateKey{DID: "OTHER", Nonce: "3"}, RoleVerifier, sm))

	rs, err := testStore.All(did, false)
	assert.NoError(err)
	assert.SLen(rs, 2)

	rs, err = testStore.All(did, true)
	assert.NoError(err)
	assert.SLen(rs, 1)
	assert.Equal(rs[0].Key.Nonce, "1")
}

func TestUpdate(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	ctx := context.Background()
	key := StateKey{DID: "TEST", Nonce: "update"}
	assert.NoError(testStore.Add(key, RoleVerifier, verifier.New("verifier")))

	next, err := Update(testStore, key, new(verifier.SM), func(sm *verifier.SM) (*verifier.SM, error) {
		return sm.Step(ctx, verifier.SetPresentationRequest{ProofRequest: proofReq}, verifier.Deps{})
	})
	assert.NoError(err)
	assert.Equal(next.StateName(), verifier.StatePresentationRequestSet)

	r, err := testStore.Get(key)
	assert.NoError(err)
	assert.Equal(r.StateName, verifier.StatePresentationRequestSet)
	assert.Equal(r.Role, RoleVerifier)

	_, err = Update(testStore, key, new(verifier.SM), func(sm *verifier.SM) (*verifier.SM, error) {
		return sm.Step(ctx, verifier.SendPresentationRequest{}, verifier.Deps{})
	})
	assert.Error(err)
	r, err = testStore.Get(key)
	assert.NoError(err)
	assert.Equal(r.StateName, verifier.StatePresentationRequestSet)

	_, err = Update(testStore, StateKey{DID: "TEST", Nonce: "none"}, new(verifier.SM),
		func(sm *verifier.SM) (*verifier.SM, error) { return sm, nil })
	assert.That(errors.Is(err, storage.ErrDataNotFound))
}

func TestLocker(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	var (
		l       Locker
		wg      sync.WaitGroup
		counter int
	)
	key := StateKey{DID: "TEST", Nonce: "lock"}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(key)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(counter, 50)
	assert.MLen(l.locks, 0)
}

func TestStore_Close(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	path := "close-" + dbPath
	s, err := Open(Config{Filename: path})
	assert.NoError(err)
	assert.NoError(s.Close())
	assert.NoError(s.Close())
	os.Remove(path)

	_, err = Open(Config{Filename: path, Key: "not hex"})
	assert.Error(err)
}
