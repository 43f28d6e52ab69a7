package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/drafting"
	"github.com/jonathan/resume-studio/internal/types"
)

func TestGenerate_AppliesDraftToSession(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/generate", token,
		map[string]string{"job_description": "Senior Go engineer"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Drafted Candidate", resp.Resume.PersonalInfo.FullName)

	// The session itself now holds the draft.
	state := env.snapshot(t, token, sessionID)
	assert.Equal(t, "Drafted summary", state.Resume.Summary)
}

func TestGenerate_UpstreamFailureIsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.drafter.err = &drafting.ServiceError{Action: "generate", Message: "model unavailable"}
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/generate", token,
		map[string]string{"job_description": "Senior Go engineer"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// Session state is untouched by the failed draft.
	state := env.snapshot(t, token, sessionID)
	assert.Empty(t, state.Resume.Summary)
}

func TestGenerate_MalformedResponseIsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.drafter.err = &drafting.MalformedResponseError{Action: "generate", Message: "schema mismatch"}
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/generate", token,
		map[string]string{"job_description": "whatever"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGenerate_DuplicateInFlightConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.drafter.started = make(chan struct{}, 1)
	env.drafter.release = make(chan struct{})
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/generate", token,
			map[string]string{"job_description": "first"})
		assert.Equal(t, http.StatusOK, rec.Code)
	}()

	// Wait until the first request holds the in-flight slot.
	<-env.drafter.started

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/generate", token,
		map[string]string{"job_description": "duplicate"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(env.drafter.release)
	wg.Wait()

	// Only one upstream call was made.
	assert.Equal(t, 1, env.drafter.genCalls)
}

func TestGenerate_StaleDraftIsDiscarded(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	// A newer drafting request was accepted while this one was running.
	seq := env.server.sequencer.Next(sessionID.String())
	env.server.sequencer.Next(sessionID.String())

	require.False(t, env.server.sequencer.IsLatest(sessionID.String(), seq))

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/generate", token,
		map[string]string{"job_description": "latest"})
	// The request above took a fresh sequence number, so it is the latest
	// and applies normally.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/analyze", token,
		map[string]string{"job_description": "Senior Go engineer"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report types.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 82, report.Score)
}

func TestEnhanceAndRefine_ReturnTextWithoutMutating(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	for _, action := range []string{"enhance", "refine"} {
		rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/"+action, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, action)

		var resp textDraftResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "rewritten text", resp.Text)
	}

	state := env.snapshot(t, token, sessionID)
	assert.Empty(t, state.Resume.Summary)
}

func TestCompose_AppliesSummary(t *testing.T) {
	env := newTestEnv(t)
	env.drafter.text = "A composed professional summary."
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/compose", token,
		map[string]string{"name": "Jane Doe", "talents": "Go, SQL"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	state := env.snapshot(t, token, sessionID)
	assert.Equal(t, "A composed professional summary.", state.Resume.Summary)
}

func TestDrafting_UnavailableWithoutClient(t *testing.T) {
	env := newTestEnv(t)
	env.server.drafter = nil
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	for _, action := range []string{"generate", "analyze", "enhance", "refine", "compose"} {
		rec := env.do(t, "POST", "/sessions/"+sessionID.String()+"/"+action, token,
			map[string]string{})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, action)
	}
}

func TestInflightGuard(t *testing.T) {
	g := newInflightGuard()

	require.True(t, g.claim("a"))
	require.False(t, g.claim("a"))
	require.True(t, g.claim("b"))

	g.release("a")
	require.True(t, g.claim("a"))
}
