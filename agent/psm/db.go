package psm

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/findy-network/findy-aries-fsm/agent/bus"
	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-common-go/crypto/db"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	bucketMachine byte = 0 + iota
)

var buckets = [][]byte{
	{bucketMachine},
}

type Config struct {
	Filename string

	// Key is the hex encoded AES key of the records. Empty key stores the
	// records in plain text which is only for tests and tooling.
	Key string
}

// Store is the bolt DB of the machine records.
type Store struct {
	Locker

	// Station gets the state changes of the added machines if it's set.
	Station *bus.Station

	l      sync.RWMutex
	db     db.Handle
	cipher *crypto.Cipher
}

// Open initializes the store. The file handle is opened lazily by the
// first access.
func Open(cfg Config) (s *Store, err error) {
	defer err2.Handle(&err, "psm open %s", cfg.Filename)

	s = &Store{}
	if cfg.Key != "" {
		s.cipher = crypto.NewCipher(try.To1(hex.DecodeString(cfg.Key)))
	}
	s.db = db.New(db.Cfg{
		Filename:   cfg.Filename,
		Buckets:    buckets,
		BackupName: cfg.Filename + "_backup",
	})
	return s, nil
}

func (s *Store) Close() (err error) {
	defer err2.Handle(&err, "psm close")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db == nil {
		glog.Warningln("psm store already closed")
		return nil
	}
	try.To(s.db.Close())
	s.db = nil
	return nil
}

// Add stores the machine. The previous record of the key is replaced.
func (s *Store) Add(key StateKey, role Role, m Machine) (err error) {
	defer err2.Handle(&err, "psm add %s", key)

	r := try.To1(NewRecord(key, role, m))
	glog.V(1).Infof("psm add %s: %s/%s", key, role, r.StateName)
	try.To(s.AddRecord(r))

	if s.Station != nil {
		s.Station.Broadcast(bus.Notify{
			DID:       key.DID,
			ThreadID:  key.Nonce,
			Role:      string(role),
			StateName: r.StateName,
			Terminal:  r.Terminal,
			Timestamp: r.Timestamp,
		})
	}
	return nil
}

func (s *Store) AddRecord(r *Record) error {
	s.l.RLock()
	defer s.l.RUnlock()

	return s.db.AddKeyValueToBucket(buckets[bucketMachine],
		&db.Data{
			Data: r.Data(),
			Read: s.encrypt,
		},
		&db.Data{
			Data: r.Key.Data(),
			Read: s.hash,
		},
	)
}

// Get returns the record of the key. storage.ErrDataNotFound is returned
// if there is no record.
func (s *Store) Get(key StateKey) (r *Record, err error) {
	defer err2.Handle(&err, "psm get %s", key)

	s.l.RLock()
	defer s.l.RUnlock()

	found := try.To1(s.db.GetKeyValueFromBucket(buckets[bucketMachine],
		&db.Data{
			Data: key.Data(),
			Read: s.hash,
		},
		&db.Data{
			Write: s.decrypt,
			Use: func(d []byte) interface{} {
				r = NewRecordFromData(d)
				return nil
			},
		}))
	if !found || r == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrDataNotFound, key)
	}
	return r, nil
}

// Load unmarshals the machine of the key to m.
func (s *Store) Load(key StateKey, m Machine) (r *Record, err error) {
	defer err2.Handle(&err)

	r = try.To1(s.Get(key))
	try.To(r.Load(m))
	return r, nil
}

func (s *Store) Rm(key StateKey) error {
	s.l.RLock()
	defer s.l.RUnlock()

	glog.V(1).Infoln("psm rm", key)
	return s.db.RmKeyValueFromBucket(buckets[bucketMachine],
		&db.Data{
			Data: key.Data(),
			Read: s.hash,
		})
}

// All returns the records of the DID. If pending is set, the terminal
// machines are left out.
func (s *Store) All(did string, pending bool) (rs []Record, err error) {
	defer err2.Handle(&err, "psm all %s", did)

	s.l.RLock()
	defer s.l.RUnlock()

	_ = try.To1(s.db.GetAllValuesFromBucket(buckets[bucketMachine], s.decrypt,
		func(d []byte) []byte {
			r := NewRecordFromData(d)
			if r.Key.DID == did && !(pending && r.Terminal) {
				rs = append(rs, *r)
			}
			return d
		}))
	return rs, nil
}

// hash makes the cryptographic hash of the key. With the cipher the thread
// IDs aren't stored as plain text.
func (s *Store) hash(key []byte) (k []byte) {
	if s.cipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return append(key[:0:0], key...)
}

func (s *Store) encrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryEncrypt(value)
	}
	return append(value[:0:0], value...)
}

func (s *Store) decrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryDecrypt(value)
	}
	return append(value[:0:0], value...)
}
