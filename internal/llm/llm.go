// Package llm defines the contract with the external language
// understanding/generation service and its OpenAI-backed implementation.
package llm

import "context"

// Message is a role-tagged transcript entry as the service expects it.
// Role is "system", "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// Service is the collaborator contract the turn processor consumes. Both
// operations may block for meaningfully long latency; callers bound them
// with a context timeout and treat any error, timeout included, as a
// recoverable degradation (fixed fallback reply, extraction skipped).
type Service interface {
	// GenerateReply produces the assistant's next turn from the full
	// role-tagged transcript.
	GenerateReply(ctx context.Context, messages []Message) (string, error)

	// ExtractFields runs the single-shot extraction prompt and returns the
	// parsed field map. A malformed response is an error: the caller treats
	// it as "no new fields", never as fatal.
	ExtractFields(ctx context.Context, prompt string) (map[string]any, error)
}
