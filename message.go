package tlq

// MaxMessageSize is the largest message body the TLQ server accepts,
// in bytes.
const MaxMessageSize = 64 * 1024

// State is the server-reported lifecycle label of a message. The
// vocabulary is owned by the server; clients should treat unknown
// values as opaque.
type State string

const (
	StateReady      State = "Ready"
	StateProcessing State = "Processing"
	StateFailed     State = "Failed"
)

// Message is a unit of work stored by the TLQ server. Messages are only
// ever produced by decoding server responses; the identifier is assigned
// server-side.
type Message struct {
	ID         string `json:"id"`
	Body       string `json:"body"`
	State      State  `json:"state"`
	RetryCount int    `json:"retry_count"`
}

// Request and response payloads for the fixed TLQ endpoints.

type addRequest struct {
	Body string `json:"body"`
}

type addResponse struct {
	ID string `json:"id"`
}

type getRequest struct {
	Count int `json:"count"`
}

type getResponse struct {
	Messages []Message `json:"messages"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}
