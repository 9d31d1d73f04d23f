package decorator

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/findy-network/findy-aries-fsm/agent/pltype"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

var ErrNoAttachment = errors.New("attachment missing")

func NewThread(ID, PID string) *Thread {
	realPID := ""
	if ID != PID {
		realPID = PID
	}
	return &Thread{ID: ID, PID: realPID}
}

// ThreadID returns effective thread ID without mutating the thread: thid if
// present, else the given message ID.
func ThreadID(thread *Thread, msgID string) string {
	if thread == nil || thread.ID == "" {
		return msgID
	}
	return thread.ID
}

// NewAttachment builds a single item base64 JSON attachment list.
func NewAttachment(ID string, data []byte) []Attachment {
	return []Attachment{{
		ID:       ID,
		MimeType: pltype.MimeTypeJSON,
		Data: AttachmentData{
			Base64: base64.StdEncoding.EncodeToString(data),
		},
	}}
}

// Bytes decodes the attachment's payload.
func (a Attachment) Bytes() (d []byte, err error) {
	defer err2.Handle(&err, "attachment %s", a.ID)

	switch {
	case a.Data.Base64 != "":
		d, err = base64.StdEncoding.DecodeString(a.Data.Base64)
		if err != nil {
			// some agents send URL encoding
			return try.To1(base64.URLEncoding.DecodeString(a.Data.Base64)), nil
		}
		return d, nil
	case a.Data.JSON != nil:
		return try.To1(json.Marshal(a.Data.JSON)), nil
	}
	return nil, ErrNoAttachment
}

// FirstAttachment decodes the first attachment of the list.
func FirstAttachment(attach []Attachment) ([]byte, error) {
	if len(attach) == 0 {
		return nil, ErrNoAttachment
	}
	return attach[0].Bytes()
}
