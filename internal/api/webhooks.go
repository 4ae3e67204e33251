package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sanrafael-clinic/frontdesk/internal/policy"
	"github.com/sanrafael-clinic/frontdesk/internal/session"
)

// TurnResponse is the channel-neutral reply envelope. Rendering it into
// TwiML or a chat message is the gateway's job.
type TurnResponse struct {
	Reply    string `json:"reply"`
	Continue bool   `json:"continue"`
}

// terminalCallStatuses are the Twilio call statuses after which no further
// speech arrives on the call.
var terminalCallStatuses = map[string]bool{
	"completed": true,
	"failed":    true,
	"busy":      true,
	"no-answer": true,
}

// voiceStart handles the call-start webhook: it opens (or resumes) the
// session and answers with the time-of-day greeting.
func (s *Server) voiceStart(w http.ResponseWriter, r *http.Request) {
	callSID := r.FormValue("CallSid")
	if callSID == "" {
		http.Error(w, `{"error":"CallSid is required"}`, http.StatusBadRequest)
		return
	}

	rec, created := s.sessions.ResolveOrCreate(session.ChannelVoice, callSID)
	s.engine.Open(rec)
	s.logger.Info("call started", "call_sid", callSID, "new_session", created)

	s.respond(w, TurnResponse{Reply: s.engine.Greeting(), Continue: true})
}

// voiceTurn handles one speech result. Low-confidence transcriptions get a
// repeat prompt without touching the session at all.
func (s *Server) voiceTurn(w http.ResponseWriter, r *http.Request) {
	callSID := r.FormValue("CallSid")
	if callSID == "" {
		http.Error(w, `{"error":"CallSid is required"}`, http.StatusBadRequest)
		return
	}

	speech := strings.TrimSpace(r.FormValue("SpeechResult"))
	// A missing or unparseable confidence is zero trust, not full trust:
	// the gateway reports one on every speech result, so its absence means
	// the recognition never happened.
	confidence := 0.0
	if c, err := strconv.ParseFloat(r.FormValue("Confidence"), 64); err == nil {
		confidence = c
	}
	if speech == "" || confidence < s.minConfidence {
		s.respond(w, TurnResponse{Reply: policy.RepeatPrompt, Continue: true})
		return
	}

	// Open unconditionally: the turn may have arrived without a preceding
	// call-start webhook, or overtaken one that is still opening the record.
	rec, _ := s.sessions.ResolveOrCreate(session.ChannelVoice, callSID)
	s.engine.Open(rec)

	reply, cont := s.engine.ProcessTurn(r.Context(), rec, speech)
	if !cont {
		if removed := s.sessions.Dispose(session.ChannelVoice, callSID); removed != nil {
			s.engine.Close(r.Context(), removed)
		}
	}
	s.respond(w, TurnResponse{Reply: reply, Continue: cont})
}

// voiceStatus handles Twilio status callbacks and tears the session down
// once the call reaches a terminal status.
func (s *Server) voiceStatus(w http.ResponseWriter, r *http.Request) {
	callSID := r.FormValue("CallSid")
	if callSID == "" {
		http.Error(w, `{"error":"CallSid is required"}`, http.StatusBadRequest)
		return
	}

	status := r.FormValue("CallStatus")
	if terminalCallStatuses[status] {
		if removed := s.sessions.Dispose(session.ChannelVoice, callSID); removed != nil {
			s.engine.Close(r.Context(), removed)
			s.logger.Info("call ended", "call_sid", callSID, "call_status", status)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// chat handles text-channel messages. The commands "reiniciar" and "ayuda"
// (with English aliases) are handled without invoking the language model.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	from := r.FormValue("From")
	if from == "" {
		http.Error(w, `{"error":"From is required"}`, http.StatusBadRequest)
		return
	}
	body := strings.TrimSpace(r.FormValue("Body"))

	switch strings.ToLower(body) {
	case "reiniciar", "reset":
		if removed := s.sessions.Dispose(session.ChannelChat, from); removed != nil {
			s.engine.Close(r.Context(), removed)
		}
		rec, _ := s.sessions.ResolveOrCreate(session.ChannelChat, from)
		s.engine.Open(rec)
		s.respond(w, TurnResponse{Reply: s.engine.Greeting(), Continue: true})
		return
	case "ayuda", "help":
		s.respond(w, TurnResponse{Reply: policy.ChatHelp, Continue: true})
		return
	}
	if body == "" {
		s.respond(w, TurnResponse{Reply: policy.RepeatPrompt, Continue: true})
		return
	}

	rec, _ := s.sessions.ResolveOrCreate(session.ChannelChat, from)
	s.engine.Open(rec)

	reply, cont := s.engine.ProcessTurn(r.Context(), rec, body)
	if !cont {
		if removed := s.sessions.Dispose(session.ChannelChat, from); removed != nil {
			s.engine.Close(r.Context(), removed)
		}
	}
	s.respond(w, TurnResponse{Reply: reply, Continue: cont})
}

func (s *Server) respond(w http.ResponseWriter, resp TurnResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
