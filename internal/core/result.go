package core

// MaxBatchSize is the gateway's per-request recipient limit.
const MaxBatchSize = 2000

// Titles used by locally rejected sends, for programmatic branching.
const (
	// ResultNoValidRecipient means dedup and mobile filtering left nothing.
	ResultNoValidRecipient = "no valid recipient"

	// ResultBatchTooLarge means the batch exceeds MaxBatchSize recipients.
	ResultBatchTooLarge = "max 2000 recipients"
)

// ActionResult is the normalized outcome of a send. Ok=false with a status
// and title is a validation- or gateway-reported failure delivered through
// a successful call; transport problems surface as errors instead.
type ActionResult struct {
	// Ok reports whether the gateway accepted the send.
	Ok bool

	// Status is the gateway status code, nil when not provided. Locally
	// rejected sends use -1.
	Status *int

	// Title is the failure title or gateway message.
	Title string

	// Data holds any additional gateway payload.
	Data map[string]any
}

// NewFailedResult builds a locally rejected result with status -1.
func NewFailedResult(title string) *ActionResult {
	status := -1
	return &ActionResult{Status: &status, Title: title, Data: map[string]any{}}
}
