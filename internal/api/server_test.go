package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sanrafael-clinic/frontdesk/internal/catalog"
	"github.com/sanrafael-clinic/frontdesk/internal/engine"
	"github.com/sanrafael-clinic/frontdesk/internal/llm"
	"github.com/sanrafael-clinic/frontdesk/internal/policy"
	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

type scriptedLLM struct {
	reply  string
	fields map[string]any
}

func (s *scriptedLLM) GenerateReply(context.Context, []llm.Message) (string, error) {
	return s.reply, nil
}

func (s *scriptedLLM) ExtractFields(context.Context, string) (map[string]any, error) {
	if s.fields == nil {
		return map[string]any{}, nil
	}
	return s.fields, nil
}

func newTestServer(t *testing.T, svc llm.Service) (*Server, *session.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewRegistry(logger)
	eng := engine.New(svc, catalog.Default(), nil, nil, 5*time.Second, logger)
	return NewServer(8650, eng, sessions, 0.5, logger), sessions
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func decodeTurn(t *testing.T, w *httptest.ResponseRecorder) TurnResponse {
	t.Helper()
	var resp TurnResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedLLM{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint_CountsActiveSessions(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{})
	sessions.ResolveOrCreate(session.ChannelVoice, "CA-1")
	sessions.ResolveOrCreate(session.ChannelChat, "whatsapp:+541100000000")

	req := httptest.NewRequest("GET", "/api/v1/frontdesk/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["service"] != "frontdesk" {
		t.Errorf("expected service frontdesk, got %v", body["service"])
	}
	if body["active_sessions"] != float64(2) {
		t.Errorf("expected 2 active sessions, got %v", body["active_sessions"])
	}
}

func TestVoiceStart_GreetsAndOpensSession(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{})

	w := postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-start"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeTurn(t, w)
	if !resp.Continue {
		t.Error("expected continue=true on call start")
	}
	if !strings.Contains(resp.Reply, "Clínica San Rafael") {
		t.Errorf("expected clinic greeting, got %q", resp.Reply)
	}

	rec, ok := sessions.Lookup(session.ChannelVoice, "CA-start")
	if !ok {
		t.Fatal("expected session registered after call start")
	}
	if !rec.Opened() {
		t.Error("expected opened session with system instructions")
	}
}

func TestVoiceStart_RequiresCallSid(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedLLM{})

	w := postForm(srv, "/webhook/voice", url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestVoiceTurn_ProcessesSpeech(t *testing.T) {
	svc := &scriptedLLM{
		reply:  "¿Me dice su nombre completo?",
		fields: map[string]any{"specialty": "cardiologia"},
	}
	srv, sessions := newTestServer(t, svc)
	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-turn"}})

	w := postForm(srv, "/webhook/voice/turn", url.Values{
		"CallSid":      {"CA-turn"},
		"SpeechResult": {"necesito un turno de cardiología"},
		"Confidence":   {"0.92"},
	})
	resp := decodeTurn(t, w)
	if resp.Reply != "¿Me dice su nombre completo?" {
		t.Errorf("unexpected reply %q", resp.Reply)
	}
	if !resp.Continue {
		t.Error("expected continue=true")
	}

	rec, _ := sessions.Lookup(session.ChannelVoice, "CA-turn")
	if rec.Intake.Specialty != "cardiologia" {
		t.Errorf("expected extracted specialty, got %q", rec.Intake.Specialty)
	}
}

func TestVoiceTurn_LowConfidenceAsksToRepeat(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{reply: "no debería llegar acá"})
	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-low"}})
	rec, _ := sessions.Lookup(session.ChannelVoice, "CA-low")
	turnsBefore := len(rec.Transcript)

	w := postForm(srv, "/webhook/voice/turn", url.Values{
		"CallSid":      {"CA-low"},
		"SpeechResult": {"mmm nffff"},
		"Confidence":   {"0.21"},
	})
	resp := decodeTurn(t, w)
	if resp.Reply != policy.RepeatPrompt {
		t.Errorf("expected repeat prompt, got %q", resp.Reply)
	}
	if !resp.Continue {
		t.Error("low confidence must not end the call")
	}
	if len(rec.Transcript) != turnsBefore {
		t.Error("low-confidence speech must not touch the transcript")
	}
}

func TestVoiceTurn_MissingConfidenceAsksToRepeat(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{reply: "no debería llegar acá"})
	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-nc"}})
	rec, _ := sessions.Lookup(session.ChannelVoice, "CA-nc")
	turnsBefore := len(rec.Transcript)

	// No Confidence field at all: treated as zero trust, not full trust.
	w := postForm(srv, "/webhook/voice/turn", url.Values{
		"CallSid":      {"CA-nc"},
		"SpeechResult": {"necesito un turno"},
	})
	resp := decodeTurn(t, w)
	if resp.Reply != policy.RepeatPrompt {
		t.Errorf("expected repeat prompt, got %q", resp.Reply)
	}
	if len(rec.Transcript) != turnsBefore {
		t.Error("missing confidence must not touch the transcript")
	}
}

func TestVoiceTurn_WithoutCallStartStillInstallsSystemPrompt(t *testing.T) {
	svc := &scriptedLLM{reply: "¿Para qué especialidad?"}
	srv, sessions := newTestServer(t, svc)

	// The turn webhook arrives before (or instead of) the call-start one.
	w := postForm(srv, "/webhook/voice/turn", url.Values{
		"CallSid":      {"CA-noopen"},
		"SpeechResult": {"necesito un turno"},
		"Confidence":   {"0.9"},
	})
	resp := decodeTurn(t, w)
	if !resp.Continue {
		t.Fatal("expected continue=true")
	}

	rec, ok := sessions.Lookup(session.ChannelVoice, "CA-noopen")
	if !ok {
		t.Fatal("expected session registered")
	}
	if !rec.Opened() {
		t.Fatal("expected system prompt installed")
	}
	if rec.Transcript[0].Speaker != session.SpeakerSystem {
		t.Errorf("first transcript entry is %+v, want the system entry", rec.Transcript[0])
	}
}

func TestVoiceTurn_FarewellDisposesSession(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{})
	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-bye"}})

	w := postForm(srv, "/webhook/voice/turn", url.Values{
		"CallSid":      {"CA-bye"},
		"SpeechResult": {"eso es todo, hasta luego"},
		"Confidence":   {"0.95"},
	})
	resp := decodeTurn(t, w)
	if resp.Continue {
		t.Error("expected continue=false on farewell")
	}
	if resp.Reply != policy.Farewell {
		t.Errorf("expected farewell, got %q", resp.Reply)
	}
	if _, ok := sessions.Lookup(session.ChannelVoice, "CA-bye"); ok {
		t.Error("expected session disposed after farewell")
	}
}

func TestVoiceStatus_TerminalStatusDisposes(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{})
	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-status"}})

	w := postForm(srv, "/webhook/voice/status", url.Values{
		"CallSid":    {"CA-status"},
		"CallStatus": {"completed"},
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if _, ok := sessions.Lookup(session.ChannelVoice, "CA-status"); ok {
		t.Error("expected session disposed on completed status")
	}
}

func TestVoiceStatus_NonTerminalStatusKeepsSession(t *testing.T) {
	srv, sessions := newTestServer(t, &scriptedLLM{})
	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"CA-ringing"}})

	postForm(srv, "/webhook/voice/status", url.Values{
		"CallSid":    {"CA-ringing"},
		"CallStatus": {"in-progress"},
	})
	if _, ok := sessions.Lookup(session.ChannelVoice, "CA-ringing"); !ok {
		t.Error("in-progress status must not dispose the session")
	}
}

func TestChat_ProcessesMessage(t *testing.T) {
	svc := &scriptedLLM{reply: "La consulta de cardiología cuesta $15000."}
	srv, sessions := newTestServer(t, svc)

	w := postForm(srv, "/webhook/chat", url.Values{
		"From": {"whatsapp:+541155551234"},
		"Body": {"¿cuánto sale la consulta de cardiología?"},
	})
	resp := decodeTurn(t, w)
	if resp.Reply != "La consulta de cardiología cuesta $15000." {
		t.Errorf("unexpected reply %q", resp.Reply)
	}
	if _, ok := sessions.Lookup(session.ChannelChat, "whatsapp:+541155551234"); !ok {
		t.Error("expected chat session registered")
	}
}

func TestChat_ResetCommandStartsFresh(t *testing.T) {
	svc := &scriptedLLM{reply: "ok", fields: map[string]any{"full_name": "Juan Pérez"}}
	srv, sessions := newTestServer(t, svc)
	from := "whatsapp:+541155550000"

	postForm(srv, "/webhook/chat", url.Values{"From": {from}, "Body": {"me llamo Juan Pérez"}})
	rec, _ := sessions.Lookup(session.ChannelChat, from)
	if rec.Intake.FullName != "Juan Pérez" {
		t.Fatalf("expected name captured, got %q", rec.Intake.FullName)
	}

	w := postForm(srv, "/webhook/chat", url.Values{"From": {from}, "Body": {"reiniciar"}})
	resp := decodeTurn(t, w)
	if !strings.Contains(resp.Reply, "Clínica San Rafael") {
		t.Errorf("expected fresh greeting after reset, got %q", resp.Reply)
	}

	fresh, _ := sessions.Lookup(session.ChannelChat, from)
	if fresh == rec {
		t.Error("reset must create a new session record")
	}
	if fresh.Intake.FullName != "" {
		t.Errorf("reset must clear the intake, got %q", fresh.Intake.FullName)
	}
}

func TestChat_HelpCommand(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedLLM{reply: "no debería llegar acá"})

	w := postForm(srv, "/webhook/chat", url.Values{
		"From": {"whatsapp:+541155559999"},
		"Body": {"AYUDA"},
	})
	resp := decodeTurn(t, w)
	if resp.Reply != policy.ChatHelp {
		t.Errorf("expected help reply, got %q", resp.Reply)
	}
}

func TestChat_RequiresFrom(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedLLM{})

	w := postForm(srv, "/webhook/chat", url.Values{"Body": {"hola"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestChannelsDoNotShareSessions(t *testing.T) {
	svc := &scriptedLLM{reply: "ok", fields: map[string]any{"specialty": "pediatria"}}
	srv, sessions := newTestServer(t, svc)

	postForm(srv, "/webhook/voice", url.Values{"CallSid": {"shared-id"}})
	postForm(srv, "/webhook/chat", url.Values{"From": {"shared-id"}, "Body": {"quiero pediatría"}})

	voiceRec, _ := sessions.Lookup(session.ChannelVoice, "shared-id")
	chatRec, _ := sessions.Lookup(session.ChannelChat, "shared-id")
	if voiceRec == chatRec {
		t.Fatal("voice and chat identities must not collide")
	}
	if voiceRec.Intake.Specialty != "" {
		t.Error("chat turn leaked into the voice session")
	}
	if chatRec.Intake.Specialty != "pediatria" {
		t.Errorf("expected chat session intake, got %q", chatRec.Intake.Specialty)
	}
}
