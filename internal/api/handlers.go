package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/outreach-scheduler/internal/domain"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
)

// HandleHealth reports liveness.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PreviewRequest is a full snapshot supplied by the caller for a
// dry-run evaluation. Nothing is read from or written to storage; this
// is the endpoint operators use to answer "what would the engine do for
// this contact right now / at instant X".
type PreviewRequest struct {
	Contact  domain.Contact          `json:"contact"`
	Campaign domain.Campaign         `json:"campaign"`
	Steps    []domain.SequenceStep   `json:"steps"`
	Progress []domain.ProgressRecord `json:"progress"`

	// Now optionally freezes the evaluation instant (RFC 3339). Empty
	// means the server clock.
	Now string `json:"now,omitempty"`
}

// HandlePreview evaluates a supplied snapshot without touching storage.
func (s *Server) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Contact.ID == "" {
		writeError(w, http.StatusBadRequest, "contact.id is required")
		return
	}

	var decision domain.Decision
	if req.Now != "" {
		now, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid now timestamp: "+err.Error())
			return
		}
		decision = s.engine.EvaluateAt(req.Contact, req.Campaign, req.Steps, req.Progress, now)
	} else {
		decision = s.engine.Evaluate(req.Contact, req.Campaign, req.Steps, req.Progress)
	}

	writeJSON(w, http.StatusOK, decision)
}

// HandleContactDecision evaluates one stored contact.
func (s *Server) HandleContactDecision(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	decision, err := s.svc.EvaluateContact(r.Context(), contactID)
	if err != nil {
		if errors.Is(err, sequence.ErrContactNotFound) || errors.Is(err, sequence.ErrCampaignNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, decision)
}

// HandleTick runs one batch page immediately and returns its decisions.
func (s *Server) HandleTick(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		writeError(w, http.StatusServiceUnavailable, "scheduler not attached")
		return
	}

	decisions, err := s.scheduler.RunOnce(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sent := 0
	for _, d := range decisions {
		if d.Outcome == domain.OutcomeSend {
			sent++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluated": len(decisions),
		"send":      sent,
		"decisions": decisions,
	})
}
