package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flourish/internal/ornament"
)

// momentWindow mirrors the engine's past-moment scan depth; fetching more
// from history would be discarded anyway.
const momentWindow = 8

type ruleRequest struct {
	ID     string `json:"id"`
	Tactic string `json:"tactic"`
	Uses   int    `json:"uses"`
}

type renderRequest struct {
	Text            string       `json:"text"`
	Rule            *ruleRequest `json:"rule"`
	InteractionRule *ruleRequest `json:"interaction_rule"` // alternate key
	ConversationID  string       `json:"conversation_id"`
	LastMessage     string       `json:"last_message"`
	KeyMoments      []string     `json:"key_moments"`
	Topics          []string     `json:"topics"`
	UserStyle       *struct {
		PrefersLong *bool `json:"prefers_long"`
	} `json:"user_style"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	sem := ornament.Semantics{Text: req.Text}
	rule := req.Rule
	if rule == nil {
		rule = req.InteractionRule
	}
	if rule != nil && rule.ID != "" {
		sem.Rule = &ornament.BasicRule{RuleID: rule.ID, RuleTactic: rule.Tactic, Uses: rule.Uses}
	}

	rc := ornament.RenderContext{
		LastMessage: req.LastMessage,
		KeyMoments:  req.KeyMoments,
		Topics:      req.Topics,
	}
	if req.UserStyle != nil {
		rc.UserStyle.PrefersLong = req.UserStyle.PrefersLong
	}

	// When the request names a conversation but carries no window, pull
	// the recent moments from history. A history failure means an empty
	// window, not a failed render.
	if rc.KeyMoments == nil && req.ConversationID != "" && s.history != nil {
		moments, err := s.history.Recent(r.Context(), req.ConversationID, momentWindow)
		if err != nil {
			log.Warn().Err(err).Str("conversation", req.ConversationID).Msg("history unavailable")
		} else {
			rc.KeyMoments = moments
		}
	}

	s.mu.Lock()
	reply := s.engine.Render(sem, rc)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

func (s *Server) handleAddMoment(w http.ResponseWriter, r *http.Request) {
	convID := chi.URLParam(r, "convID")

	var req struct {
		Moment string `json:"moment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Moment == "" {
		http.Error(w, `{"error":"moment required"}`, http.StatusBadRequest)
		return
	}

	if err := s.history.Append(r.Context(), convID, req.Moment); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleGetMoments(w http.ResponseWriter, r *http.Request) {
	convID := chi.URLParam(r, "convID")

	moments, err := s.history.Recent(r.Context(), convID, 0)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"moments": moments})
}

func (s *Server) handleTraces(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	traces, err := s.db.RecentTraces(limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type traceResponse struct {
		ID        string          `json:"id"`
		RuleID    string          `json:"rule_id"`
		Tactic    string          `json:"tactic,omitempty"`
		Snapshot  json.RawMessage `json:"snapshot,omitempty"`
		CreatedAt int64           `json:"created_at"`
	}
	out := make([]traceResponse, 0, len(traces))
	for _, t := range traces {
		tr := traceResponse{ID: t.ID, RuleID: t.RuleID, Tactic: t.Tactic, CreatedAt: t.CreatedAt}
		if t.Snapshot != "" {
			tr.Snapshot = json.RawMessage(t.Snapshot)
		}
		out = append(out, tr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"traces": out})
}

func (s *Server) handleAddCollocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phrase string `json:"phrase"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Phrase == "" {
		http.Error(w, `{"error":"phrase required"}`, http.StatusBadRequest)
		return
	}

	if err := s.db.AddCollocation(req.Phrase); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleListCollocations(w http.ResponseWriter, r *http.Request) {
	collocs, err := s.db.ListCollocations()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type collocResponse struct {
		Phrase string `json:"phrase"`
		Uses   int    `json:"uses"`
	}
	out := make([]collocResponse, 0, len(collocs))
	for _, c := range collocs {
		out = append(out, collocResponse{Phrase: c.Phrase, Uses: c.Uses})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"collocations": out})
}
