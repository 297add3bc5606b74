package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flourish/internal/history"
	"flourish/internal/lexicon"
	"flourish/internal/ornament"
	"flourish/internal/store"
	"flourish/internal/voice"
)

// testServer wires an in-memory store and history behind a deterministic
// engine: neutral voice, confident policy, no collocation attempts.
func testServer(t *testing.T) *Server {
	t.Helper()

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	eng := ornament.New(voice.Fixed{}, lexicon.NewStore(db))
	eng.SetConfidenceEstimator(voice.Static(0.8))
	th := ornament.DefaultThresholds()
	th.ChanceColloc = 0
	eng.SetThresholds(th)
	eng.SetTraceSink(db)

	return New(db, eng, history.NewMemory(), "test")
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	w := doJSON(t, srv, "GET", "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["db"] != true {
		t.Errorf("db = %v, want true", resp["db"])
	}
}

func TestRenderPlain(t *testing.T) {
	srv := testServer(t)

	w := doJSON(t, srv, "POST", "/api/render", `{"text":"Sure, I can help."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["reply"] != "Sure, I can help." {
		t.Errorf("reply = %q", resp["reply"])
	}
}

func TestRenderInvalidJSON(t *testing.T) {
	srv := testServer(t)
	w := doJSON(t, srv, "POST", "/api/render", `{broken`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRenderWithExplicitMoments(t *testing.T) {
	srv := testServer(t)

	body := `{
		"text": "That sounds rough.",
		"last_message": "still stressed about the move",
		"key_moments": ["you were stressed about the move"]
	}`
	w := doJSON(t, srv, "POST", "/api/render", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.Contains(resp["reply"], "↪") {
		t.Errorf("reply = %q, want a past link", resp["reply"])
	}
	if !strings.HasPrefix(resp["reply"], "That sounds rough.") {
		t.Errorf("reply = %q, base must lead", resp["reply"])
	}
}

func TestRenderPullsMomentsFromHistory(t *testing.T) {
	srv := testServer(t)

	w := doJSON(t, srv, "POST", "/api/conversations/conv-1/moments",
		`{"moment":"you were stressed about the move"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add moment status = %d; body: %s", w.Code, w.Body.String())
	}

	body := `{
		"text": "That sounds rough.",
		"conversation_id": "conv-1",
		"last_message": "still stressed about the move"
	}`
	w = doJSON(t, srv, "POST", "/api/render", body)

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.Contains(resp["reply"], "↪") {
		t.Errorf("reply = %q, want a past link built from history", resp["reply"])
	}
}

func TestGetMoments(t *testing.T) {
	srv := testServer(t)

	doJSON(t, srv, "POST", "/api/conversations/conv-1/moments", `{"moment":"first"}`)
	doJSON(t, srv, "POST", "/api/conversations/conv-1/moments", `{"moment":"second"}`)

	w := doJSON(t, srv, "GET", "/api/conversations/conv-1/moments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Moments []string `json:"moments"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Moments) != 2 || resp.Moments[0] != "first" {
		t.Errorf("moments = %v", resp.Moments)
	}
}

func TestAddMomentValidation(t *testing.T) {
	srv := testServer(t)

	w := doJSON(t, srv, "POST", "/api/conversations/conv-1/moments", `{"moment":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty moment status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRenderRecordsTrace(t *testing.T) {
	srv := testServer(t)

	body := `{
		"text": "Noted.",
		"interaction_rule": {"id": "r-42", "tactic": "mirror"}
	}`
	w := doJSON(t, srv, "POST", "/api/render", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, "GET", "/api/traces?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("traces status = %d", w.Code)
	}

	var resp struct {
		Traces []struct {
			RuleID string `json:"rule_id"`
			Tactic string `json:"tactic"`
		} `json:"traces"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Traces) != 1 {
		t.Fatalf("traces = %d, want 1", len(resp.Traces))
	}
	if resp.Traces[0].RuleID != "r-42" || resp.Traces[0].Tactic != "mirror" {
		t.Errorf("trace = %+v", resp.Traces[0])
	}
}

func TestCollocationsRoundTrip(t *testing.T) {
	srv := testServer(t)

	w := doJSON(t, srv, "POST", "/api/collocations", `{"phrase":"down the garden path"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d; body: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, "POST", "/api/collocations", `{"phrase":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty phrase status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = doJSON(t, srv, "GET", "/api/collocations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var resp struct {
		Collocations []struct {
			Phrase string `json:"phrase"`
			Uses   int    `json:"uses"`
		} `json:"collocations"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Collocations) != 1 || resp.Collocations[0].Phrase != "down the garden path" {
		t.Errorf("collocations = %+v", resp.Collocations)
	}
}
