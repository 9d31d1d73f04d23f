// Package decorator implements the Aries message decorators the protocol state
// machines rely on: ~thread, ~timing, ~please_ack and the attachment
// structures shared by the credential protocols.
package decorator

// Thread is the ~thread decorator. ID is the thid and PID the parent thread,
// which links a new thread to the originating invitation thread.
type Thread struct {
	ID             string         `json:"thid,omitempty"`
	PID            string         `json:"pthid,omitempty"`
	SenderOrder    int            `json:"sender_order,omitempty"`
	ReceivedOrders map[string]int `json:"received_orders,omitempty"`
}

// Timing is the ~timing decorator. Times are RFC 3339 strings as they travel
// on the wire.
type Timing struct {
	InTime      string `json:"in_time,omitempty"`
	OutTime     string `json:"out_time,omitempty"`
	StaleTime   string `json:"stale_time,omitempty"`
	ExpiresTime string `json:"expires_time,omitempty"`
	DelayMilli  int    `json:"delay_milli,omitempty"`
	WaitUntil   string `json:"wait_until_time,omitempty"`
}

// PleaseAck is the ~please_ack decorator.
type PleaseAck struct {
	On []string `json:"on,omitempty"`
}

// Attachment is the ~attach decorator item.
type Attachment struct {
	ID          string         `json:"@id,omitempty"`
	MimeType    string         `json:"mime-type,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        AttachmentData `json:"data"`
}

// AttachmentData carries the payload of the attachment. The credential
// protocols use base64 but json inlined data is accepted as well.
type AttachmentData struct {
	Base64 string `json:"base64,omitempty"`
	JSON   any    `json:"json,omitempty"`
}
