package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/findy-network/findy-aries-fsm/core"
	"github.com/findy-network/findy-aries-fsm/std/common"
	"github.com/findy-network/findy-aries-fsm/std/discovery"
	"github.com/findy-network/findy-aries-fsm/std/trustping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var table = Table{
	"Waiting": {Kinds: []aries.Kind{aries.KindAck, aries.KindPing}, Threaded: true},
	"Open":    {Kinds: []aries.Kind{aries.KindQuery}},
}

func TestTable_Accepts(t *testing.T) {
	ack := common.NewAck(aries.KindAck, "thread")
	otherAck := common.NewAck(aries.KindAck, "other")
	ping := trustping.NewPing("thread", true)
	query := discovery.NewQuery("*")

	tests := []struct {
		name  string
		state string
		msg   aries.Message
		want  bool
	}{
		{"ack", "Waiting", &ack, true},
		{"ping", "Waiting", ping, true},
		{"other thread", "Waiting", &otherAck, false},
		{"illegal kind", "Waiting", query, false},
		{"unthreaded state", "Open", query, true},
		{"no rule", "Finished", &ack, false},
		{"nil", "Waiting", nil, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Accepts(tt.state, "thread", tt.msg))
		})
	}
}

func TestTable_Find(t *testing.T) {
	ack := common.NewAck(aries.KindAck, "thread")
	otherAck := common.NewAck(aries.KindAck, "other")
	ping := trustping.NewPing("thread", true)

	msgs := map[string]aries.Message{
		"1": &otherAck,
		"2": discovery.NewQuery("*"),
	}
	_, _, found := table.Find("Waiting", "thread", msgs)
	require.False(t, found)

	msgs["3"] = &ack
	msgs["4"] = ping
	id, m, found := table.Find("Waiting", "thread", msgs)
	require.True(t, found)
	// the winner isn't specified when there are many candidates
	assert.Contains(t, []string{"3", "4"}, id)
	assert.Contains(t, []aries.Kind{aries.KindAck, aries.KindPing}, m.Kind())

	_, _, found = table.Find("Finished", "thread", msgs)
	require.False(t, found)
}

func TestCheckThread(t *testing.T) {
	ack := common.NewAck(aries.KindAck, "thread")
	require.NoError(t, CheckThread("thread", &ack))

	err := CheckThread("another", &ack)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrThreadMismatch))

	require.NoError(t, CheckThread("another", discovery.NewQuery("*")))
}

func TestTrySend(t *testing.T) {
	ack := common.NewAck(aries.KindAck, "thread")
	called := false
	TrySend(context.Background(), func(context.Context, aries.Message) error {
		called = true
		return errors.New("transport down")
	}, &ack)
	assert.True(t, called)

	TrySend(context.Background(), nil, &ack)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, 0, StatusUndefined.Code())
	assert.Equal(t, 1, StatusSuccess.Code())
	assert.Equal(t, 2, StatusFailed.Code())
	assert.Equal(t, 3, StatusDeclined.Code())
	assert.Equal(t, "Declined", StatusDeclined.String())
}

type testInitial struct{}

func (*testInitial) Name() string { return "Initial" }

type testDone struct {
	Result string `json:"result"`
}

func (*testDone) Name() string { return "Done" }

var registry = Registry[Named]{
	"Initial": func() Named { return &testInitial{} },
	"Done":    func() Named { return &testDone{} },
}

func TestEnvelope(t *testing.T) {
	data, err := Marshal("source", "thread", &testDone{Result: "ok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source_id":"source","thread_id":"thread","state":{"Done":{"result":"ok"}}}`,
		string(data))

	src, thid, s, err := Unmarshal(data, registry)
	require.NoError(t, err)
	assert.Equal(t, "source", src)
	assert.Equal(t, "thread", thid)
	assert.Equal(t, &testDone{Result: "ok"}, s)

	_, _, _, err = Unmarshal([]byte(`{"state":{"Unknown":{}}}`), registry)
	assert.True(t, errors.Is(err, core.ErrInvalidJSON))

	_, _, _, err = Unmarshal([]byte(`{"state":{}}`), registry)
	assert.True(t, errors.Is(err, core.ErrInvalidJSON))

	_, _, _, err = Unmarshal([]byte(`[`), registry)
	assert.True(t, errors.Is(err, core.ErrInvalidJSON))
}
