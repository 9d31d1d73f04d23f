// Package basicmessage implements the message of Aries RFC 0095 basic
// message.
package basicmessage

import (
	"time"

	"github.com/findy-network/findy-aries-fsm/agent/aries"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

func init() {
	aries.Creator.Add(aries.KindBasicMessage, aries.Unmarshaler[Message]())
}

// ISO8601 is the sent_time format. ACA-Py doesn't accept nanoseconds.
const ISO8601 = "2006-01-02 15:04:05.999999Z"

type Message struct {
	aries.Header
	Content  string `json:"content"`
	SentTime string `json:"sent_time"`
	Locale   string `json:"~l10n,omitempty"`
}

func (*Message) Kind() aries.Kind {
	return aries.KindBasicMessage
}

func NewMessage(content string) *Message {
	return &Message{
		Header:   aries.NewHeader(aries.KindBasicMessage),
		Content:  content,
		SentTime: time.Now().UTC().Format(ISO8601),
	}
}

// Time parses the sent time. Both ISO 8601 and RFC 3339 formats are
// accepted.
func (m *Message) Time() (t time.Time, err error) {
	defer err2.Handle(&err, "sent time")

	t, err = time.Parse(ISO8601, m.SentTime)
	if err == nil {
		return t, nil
	}
	return try.To1(time.Parse(time.RFC3339, m.SentTime)), nil
}
