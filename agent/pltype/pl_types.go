// Package pltype holds the wire level type constants of the Aries protocols
// the state machines speak.
package pltype

// Type prefixes. Both are accepted on input, Aries is used on output except
// for out-of-band messages which must use the DIDComm org prefix.
const (
	Aries       = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec"
	DIDOrgAries = "https://didcomm.org"
)

// Connection protocol constants
const (
	ProtocolConnection    = "connections"
	HandlerInvitation     = "invitation"
	HandlerRequest        = "request"
	HandlerResponse       = "response"
	HandlerConnProblem    = "problem_report"
	ConnectionVersion     = "1.0"
	ConnectionSignature   = Aries + "/signature/1.0/ed25519Sha512_single"
	ConnectionInvitation  = Aries + "/" + ProtocolConnection + "/1.0/" + HandlerInvitation
	ConnectionRequest     = Aries + "/" + ProtocolConnection + "/1.0/" + HandlerRequest
	ConnectionResponse    = Aries + "/" + ProtocolConnection + "/1.0/" + HandlerResponse
	ConnectionProblemCode = "request_processing_error"
)

// Notification protocol constants
const (
	ProtocolNotification = "notification"
	HandlerProblemReport = "problem-report"
	HandlerAck           = "ack"
	AckStatusOK          = "OK"
	AckStatusPending     = "PENDING"
	AckStatusFail        = "FAIL"
)

// Trust ping protocol constants
const (
	ProtocolTrustPing   = "trust_ping"
	HandlerPing         = "ping"
	HandlerPingResponse = "ping_response"
)

// Basic message protocol constants
const (
	ProtocolBasicMessage = "basicmessage"
	HandlerMessage       = "message"
)

// Discover features protocol constants
const (
	ProtocolDiscoverFeatures = "discover-features"
	HandlerQuery             = "query"
	HandlerDisclose          = "disclose"
)

// Out-of-band protocol constants
const (
	ProtocolOutOfBand             = "out-of-band"
	OutOfBandVersion              = "1.1"
	HandlerHandshakeReuse         = "handshake-reuse"
	HandlerHandshakeReuseAccepted = "handshake-reuse-accepted"
	HandshakeConnections          = Aries + "/" + ProtocolConnection + "/1.0"
)

// Issue Credential protocol constants
const (
	ProtocolIssueCredential          = "issue-credential"
	HandlerIssueCredentialPropose    = "propose-credential"
	HandlerIssueCredentialOffer      = "offer-credential"
	HandlerIssueCredentialRequest    = "request-credential"
	HandlerIssueCredentialIssue      = "issue-credential"
	HandlerIssueCredentialAck        = "ack"
	HandlerIssueCredentialProblem    = "problem-report"
	IssueCredentialCredentialPreview = Aries + "/" + ProtocolIssueCredential + "/1.0/credential-preview"

	LibindyCredOfferID   = "libindy-cred-offer-0"
	LibindyCredRequestID = "libindy-cred-request-0"
	LibindyCredentialID  = "libindy-cred-0"
)

// Present Proof protocol constants
const (
	ProtocolPresentProof            = "present-proof"
	HandlerPresentProofPropose      = "propose-presentation"
	HandlerPresentProofRequest      = "request-presentation"
	HandlerPresentProofPresentation = "presentation"
	HandlerPresentProofAck          = "ack"
	HandlerPresentProofProblem      = "problem-report"
	PresentProofPresentationPreview = Aries + "/" + ProtocolPresentProof + "/1.0/presentation-preview"
	LibindyRequestPresentationID    = "libindy-request-presentation-0"
	LibindyPresentationID           = "libindy-presentation-0"
)

// MimeTypeJSON is the only attachment mime type the protocols use.
const MimeTypeJSON = "application/json"
