// Package engine implements the turn processor: the pipeline that takes a
// session record and an inbound utterance and produces the next reply.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/sanrafael-clinic/frontdesk/internal/catalog"
	"github.com/sanrafael-clinic/frontdesk/internal/events"
	"github.com/sanrafael-clinic/frontdesk/internal/llm"
	"github.com/sanrafael-clinic/frontdesk/internal/policy"
	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

// tailTurns is how many non-system transcript entries the extraction prompt
// carries as conversational context.
const tailTurns = 4

// Auditor persists a write-once conversation summary when a session closes.
// A nil Auditor disables auditing; write failures are logged, never raised.
type Auditor interface {
	WriteSummary(ctx context.Context, rec *session.Record) error
}

// Publisher emits session lifecycle events. Nil disables publishing.
type Publisher interface {
	Publish(subject string, data any) error
}

// Engine runs the turn pipeline. It mutates records only under their own
// lock, so concurrent events for different conversations proceed in
// parallel while same-conversation events serialize.
type Engine struct {
	llm         llm.Service
	catalog     *catalog.Catalog
	audit       Auditor
	bus         Publisher
	turnTimeout time.Duration
	logger      *slog.Logger
}

func New(svc llm.Service, cat *catalog.Catalog, audit Auditor, bus Publisher, turnTimeout time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		llm:         svc,
		catalog:     cat,
		audit:       audit,
		bus:         bus,
		turnTimeout: turnTimeout,
		logger:      logger,
	}
}

// Greeting is the assistant's opening line for a newly answered call or chat.
func (e *Engine) Greeting() string {
	return policy.Greeting(time.Now())
}

// Open installs the system prompt on a fresh record. The prompt captures the
// catalog snapshot and wall clock once; it is never regenerated for the
// lifetime of the conversation.
func (e *Engine) Open(rec *session.Record) {
	rec.Lock()
	defer rec.Unlock()
	if rec.Opened() {
		return
	}
	rec.Open(policy.BuildSystemPrompt(e.catalog, time.Now()))
	e.publish(events.SubjectSessionOpened, map[string]any{
		"conversation_id": rec.ConversationID,
		"channel":         string(rec.Channel),
	})
}

// ProcessTurn runs one user→assistant exchange. It returns the reply text
// and whether the conversation continues. Every failure path inside resolves
// to a user-presentable string; no error escapes the turn boundary.
func (e *Engine) ProcessTurn(ctx context.Context, rec *session.Record, utterance string) (string, bool) {
	// Termination detection sits before the pipeline: a closing phrase
	// yields the fixed farewell without running extraction or generation.
	if IsFarewell(utterance) {
		rec.Lock()
		defer rec.Unlock()
		rec.Append(session.SpeakerAssistant, policy.Farewell)
		e.logger.Info("farewell detected",
			"conversation_id", rec.ConversationID,
			"turns", rec.TurnCount,
		)
		return policy.Farewell, false
	}

	rec.Lock()
	defer rec.Unlock()

	// 1. Transcript gets the user turn.
	rec.Append(session.SpeakerUser, utterance)

	// 2. Extraction. A parse or service failure skips the step and leaves
	// the intake untouched.
	e.extract(ctx, rec, utterance)

	// 3. Urgency override: fixed referral text, no generation call. The
	// flag is sticky, so this branch keeps firing for the rest of the
	// conversation.
	var reply string
	if rec.Intake.UrgentSymptoms {
		reply = policy.UrgencyReply
	} else {
		// 4. Normal reply over the full role-tagged transcript.
		reply = e.generate(ctx, rec)
	}

	// 5–7. Assistant turn, count, continue.
	rec.Append(session.SpeakerAssistant, reply)
	rec.TurnCount++

	e.logger.Info("turn processed",
		"conversation_id", rec.ConversationID,
		"channel", string(rec.Channel),
		"turn", rec.TurnCount,
		"urgent", rec.Intake.UrgentSymptoms,
	)
	return reply, true
}

func (e *Engine) extract(ctx context.Context, rec *session.Record, utterance string) {
	prompt := policy.BuildExtractionPrompt(rec.Intake.Snapshot(), rec.Tail(tailTurns), utterance)

	ctx, cancel := context.WithTimeout(ctx, e.turnTimeout)
	defer cancel()

	fields, err := e.llm.ExtractFields(ctx, prompt)
	if err != nil {
		e.logger.Warn("extraction skipped",
			"conversation_id", rec.ConversationID,
			"error", err,
		)
		return
	}
	if raised := rec.Intake.Merge(fields); raised {
		e.logger.Info("urgent symptoms detected", "conversation_id", rec.ConversationID)
		e.publish(events.SubjectSessionUrgent, map[string]any{
			"conversation_id": rec.ConversationID,
			"channel":         string(rec.Channel),
		})
	}
}

func (e *Engine) generate(ctx context.Context, rec *session.Record) string {
	messages := make([]llm.Message, 0, len(rec.Transcript))
	for _, t := range rec.Transcript {
		messages = append(messages, llm.Message{Role: string(t.Speaker), Content: t.Text})
	}

	ctx, cancel := context.WithTimeout(ctx, e.turnTimeout)
	defer cancel()

	reply, err := e.llm.GenerateReply(ctx, messages)
	if err != nil {
		e.logger.Warn("reply generation failed, using fallback",
			"conversation_id", rec.ConversationID,
			"error", err,
		)
		return policy.FallbackReply
	}
	return reply
}

// Close marks the record terminal, writes the audit summary and publishes
// the closed event. Safe to call while a turn is in flight: the record lock
// means an in-flight result is still applied to the record for logging, but
// the transport that triggered the close sees nothing further.
func (e *Engine) Close(ctx context.Context, rec *session.Record) {
	rec.Lock()
	defer rec.Unlock()
	if rec.Closed() {
		return
	}
	rec.Close()

	if e.audit != nil {
		if err := e.audit.WriteSummary(ctx, rec); err != nil {
			e.logger.Error("audit write failed",
				"conversation_id", rec.ConversationID,
				"error", err,
			)
		}
	}

	e.publish(events.SubjectSessionClosed, map[string]any{
		"conversation_id":  rec.ConversationID,
		"channel":          string(rec.Channel),
		"turns":            rec.TurnCount,
		"duration_seconds": int(rec.Duration(time.Now()).Seconds()),
		"urgent":           rec.Intake.UrgentSymptoms,
	})
	e.logger.Info("session closed",
		"conversation_id", rec.ConversationID,
		"turns", rec.TurnCount,
	)
}

func (e *Engine) publish(subject string, data any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(subject, data); err != nil {
		e.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}
