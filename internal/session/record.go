// Package session holds the per-conversation state and the registry that
// maps transport identities to live records.
package session

import (
	"sync"
	"time"
)

type Speaker string

const (
	SpeakerSystem    Speaker = "system"
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one transcript entry. The transcript is append-only and its order
// is the exact context later sent to the language service.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Channel qualifies the conversation identity namespace. A phone call id
// and a chat sender address are not guaranteed distinct strings across
// gateways, so the registry keys every record by channel + id.
type Channel string

const (
	ChannelVoice Channel = "voice"
	ChannelChat  Channel = "chat"
)

// Record is the unit of conversational state for one ongoing conversation.
// It is mutated only by the turn processor acting for the owning
// conversation; Lock serializes concurrent events carrying the same id.
type Record struct {
	mu sync.Mutex

	ConversationID string
	Channel        Channel
	Transcript     []Turn
	Intake         Intake
	Status         Status
	StartedAt      time.Time
	TurnCount      int
}

func newRecord(ch Channel, id string, now time.Time) *Record {
	return &Record{
		ConversationID: id,
		Channel:        ch,
		Status:         StatusOpen,
		StartedAt:      now,
	}
}

// Lock takes the per-record mutex. Callers hold it for a whole turn so that
// two near-simultaneous events for the same conversation run one after the
// other.
func (r *Record) Lock() { r.mu.Lock() }

func (r *Record) Unlock() { r.mu.Unlock() }

// Opened reports whether the system prompt has been installed. A non-empty
// transcript is not enough: a turn racing ahead of the open step must not
// count as an installed prompt.
func (r *Record) Opened() bool {
	return len(r.Transcript) > 0 && r.Transcript[0].Speaker == SpeakerSystem
}

// Open installs the system prompt as the first and only system entry.
// Calling it on an already opened record is a no-op. Turns already appended
// by an event that overtook the open step stay in order after the prompt.
func (r *Record) Open(systemPrompt string) {
	if r.Opened() {
		return
	}
	r.Transcript = append([]Turn{{Speaker: SpeakerSystem, Text: systemPrompt}}, r.Transcript...)
}

// Append adds a turn to the transcript. The transcript is never reordered.
func (r *Record) Append(sp Speaker, text string) {
	r.Transcript = append(r.Transcript, Turn{Speaker: sp, Text: text})
}

// Tail returns the last n non-system transcript entries in order.
func (r *Record) Tail(n int) []Turn {
	var out []Turn
	for _, t := range r.Transcript {
		if t.Speaker == SpeakerSystem {
			continue
		}
		out = append(out, t)
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// Close marks the record terminal. A closed record is never reopened; a
// reused conversation id gets a fresh registry entry instead.
func (r *Record) Close() {
	r.Status = StatusClosed
}

func (r *Record) Closed() bool {
	return r.Status == StatusClosed
}

// Duration reports how long the conversation has been running.
func (r *Record) Duration(now time.Time) time.Duration {
	return now.Sub(r.StartedAt)
}
