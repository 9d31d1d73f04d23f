package aries

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// FactorFn builds the typed message from its JSON.
type FactorFn func(data []byte) (Message, error)

// Creator is the registry of the message factors. The std packages register
// their messages in init().
var Creator = &Factor{
	factors: make(map[Kind]FactorFn),
	majors:  make(map[string]Kind),
}

type Factor struct {
	sync.RWMutex
	factors map[Kind]FactorFn

	// majors maps protocol/major/name to the registered kind to accept minor
	// version differences as RFC 0003 tells.
	majors map[string]Kind
}

func (f *Factor) Add(k Kind, factor FactorFn) {
	f.Lock()
	defer f.Unlock()
	f.factors[k] = factor
	f.majors[majorKey(k)] = k
}

// Factor returns the factor for the kind. Kinds with different minor version
// than the registered one are accepted.
func (f *Factor) Factor(k Kind) (FactorFn, bool) {
	f.RLock()
	defer f.RUnlock()
	if fn, ok := f.factors[k]; ok {
		return fn, true
	}
	registered, ok := f.majors[majorKey(k)]
	if !ok {
		return nil, false
	}
	return f.factors[registered], true
}

func majorKey(k Kind) string {
	parts := strings.Split(string(k), "/")
	if len(parts) != 3 {
		return string(k)
	}
	major, _, _ := strings.Cut(parts[1], ".")
	return parts[0] + "/" + major + "/" + parts[2]
}

// Unmarshaler returns a FactorFn which unmarshals the JSON to a new T.
func Unmarshaler[T any, PT interface {
	*T
	Message
}]() FactorFn {
	return func(data []byte) (Message, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return PT(&v), nil
	}
}

// Parse builds the typed message from the JSON. It fails only if the data
// isn't well-formed JSON. Unknown types and messages which don't match their
// registered structure are returned as Generic.
func Parse(data []byte) (m Message, err error) {
	defer err2.Handle(&err, "aries parse")

	if !json.Valid(data) {
		return nil, core.InvalidJSON("message isn't well-formed")
	}
	var head struct {
		Type string `json:"@type"`
	}
	if json.Unmarshal(data, &head) == nil && head.Type != "" {
		if factor, ok := Creator.Factor(KindOf(head.Type)); ok {
			msg, err := factor(data)
			if err == nil {
				return msg, nil
			}
			glog.Warningf("cannot build %s, using generic: %v", head.Type, err)
		} else {
			glog.V(3).Infoln("unknown message type:", head.Type)
		}
	}
	g := &Generic{}
	try.To(g.UnmarshalJSON(data))
	return g, nil
}

// ParseString is a helper for Parse.
func ParseString(s string) (Message, error) {
	return Parse([]byte(s))
}

// Marshal serializes the message. If the type is missing, the output gets
// the canonical type of the kind. The message itself isn't changed.
func Marshal(m Message) (d []byte, err error) {
	defer err2.Handle(&err, "aries marshal")

	// json.Marshal would compact the raw data
	if g, ok := m.(*Generic); ok && g.Raw != nil {
		return append([]byte(nil), g.Raw...), nil
	}
	d = try.To1(json.Marshal(m))
	if m.header().Type != "" {
		return d, nil
	}
	var fields map[string]json.RawMessage
	try.To(json.Unmarshal(d, &fields))
	fields["@type"] = try.To1(json.Marshal(m.Kind().Type()))
	return try.To1(json.Marshal(fields)), nil
}

// Generic keeps a message which cannot be typed. It serializes back exactly
// as it was received.
type Generic struct {
	Header
	Raw json.RawMessage `json:"-"`
}

func (g *Generic) Kind() Kind {
	return KindGeneric
}

func (g *Generic) MarshalJSON() ([]byte, error) {
	if g.Raw == nil {
		return json.Marshal(g.Header)
	}
	return g.Raw, nil
}

func (g *Generic) UnmarshalJSON(data []byte) error {
	g.Raw = append(json.RawMessage(nil), data...)

	// non-object JSON and odd header fields are legal for generic messages
	var h Header
	if json.Unmarshal(data, &h) == nil {
		g.Header = h
	}
	return nil
}
