package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot fetches the session resume through the API.
func (e *testEnv) snapshot(t *testing.T, token string, sessionID fmt.Stringer) sessionResponse {
	t.Helper()
	rec := e.do(t, "GET", "/sessions/"+sessionID.String()+"/resume", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateSession_StartsWithPlaceholders(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	sessionID := env.createSession(t, token)
	resp := env.snapshot(t, token, sessionID)

	require.Len(t, resp.Resume.Experiences, 1)
	require.Len(t, resp.Resume.Education, 1)
	require.Len(t, resp.Resume.Skills, 1)
}

func TestSession_OwnershipIsEnforced(t *testing.T) {
	env := newTestEnv(t)
	tokenA, _ := env.register(t, "a@example.com")
	tokenB, _ := env.register(t, "b@example.com")

	sessionID := env.createSession(t, tokenA)

	rec := env.do(t, "GET", "/sessions/"+sessionID.String()+"/resume", tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePersonalField(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "PATCH", "/sessions/"+sessionID.String()+"/personal-info", token,
		map[string]string{"field": "fullName", "value": "Jane Doe"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := env.snapshot(t, token, sessionID)
	assert.Equal(t, "Jane Doe", resp.Resume.PersonalInfo.FullName)
}

func TestUpdatePersonalField_InvalidEmailRejected(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "PATCH", "/sessions/"+sessionID.String()+"/personal-info", token,
		map[string]string{"field": "email", "value": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The rejected edit left the session unchanged.
	resp := env.snapshot(t, token, sessionID)
	assert.Empty(t, resp.Resume.PersonalInfo.Email)
}

func TestUpdatePersonalField_UnknownField(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "PATCH", "/sessions/"+sessionID.String()+"/personal-info", token,
		map[string]string{"field": "nickname", "value": "JD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExperienceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)
	base := "/sessions/" + sessionID.String()

	// Add a second entry so removal is allowed.
	rec := env.do(t, "POST", base+"/experiences", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var added struct {
		Entry struct {
			ID string `json:"id"`
		} `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	entryID := added.Entry.ID

	rec = env.do(t, "PATCH", base+"/experiences/"+entryID, token,
		map[string]string{"field": "company", "value": "Acme"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, "PUT", base+"/experiences/"+entryID+"/current", token,
		map[string]bool{"current": true})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.snapshot(t, token, sessionID)
	require.Len(t, resp.Resume.Experiences, 2)
	assert.Equal(t, "Acme", resp.Resume.Experiences[1].Company)
	assert.True(t, resp.Resume.Experiences[1].IsCurrent)

	rec = env.do(t, "DELETE", base+"/experiences/"+entryID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = env.snapshot(t, token, sessionID)
	assert.Len(t, resp.Resume.Experiences, 1)
}

func TestRemoveLastExperience_Conflicts(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	resp := env.snapshot(t, token, sessionID)
	entryID := resp.Resume.Experiences[0].ID

	rec := env.do(t, "DELETE", "/sessions/"+sessionID.String()+"/experiences/"+entryID, token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Entry still present.
	resp = env.snapshot(t, token, sessionID)
	assert.Len(t, resp.Resume.Experiences, 1)
}

func TestUpdateExperience_UnknownEntry(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "PATCH", "/sessions/"+sessionID.String()+"/experiences/no-such-entry", token,
		map[string]string{"field": "company", "value": "Acme"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponsibilities(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)
	base := "/sessions/" + sessionID.String()

	resp := env.snapshot(t, token, sessionID)
	entryID := resp.Resume.Experiences[0].ID
	entryBase := base + "/experiences/" + entryID + "/responsibilities"

	// Append is a no-op while the trailing line is still blank; fill the
	// placeholder first, then append a fresh box.
	rec := env.do(t, "PUT", entryBase+"/0", token, map[string]string{"value": "Shipped the thing"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", entryBase, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "PUT", entryBase+"/1", token, map[string]string{"value": "Maintained the thing"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", entryBase+"/reorder", token, map[string]int{"from": 1, "to": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	resp = env.snapshot(t, token, sessionID)
	bullets := resp.Resume.Experiences[0].Responsibilities
	require.Len(t, bullets, 2)
	assert.Equal(t, "Maintained the thing", bullets[0])
	assert.Equal(t, "Shipped the thing", bullets[1])

	rec = env.do(t, "DELETE", entryBase+"/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = env.snapshot(t, token, sessionID)
	assert.Len(t, resp.Resume.Experiences[0].Responsibilities, 1)
}

func TestResponsibility_BadPosition(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	resp := env.snapshot(t, token, sessionID)
	entryID := resp.Resume.Experiences[0].ID

	rec := env.do(t, "PUT", "/sessions/"+sessionID.String()+"/experiences/"+entryID+"/responsibilities/9", token,
		map[string]string{"value": "out of range"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSkillsAndCertifications(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)
	base := "/sessions/" + sessionID.String()

	rec := env.do(t, "POST", base+"/skills", token, map[string]string{"value": "Go"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, "POST", base+"/skills", token, map[string]string{"value": "PostgreSQL"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "DELETE", base+"/skills?value=Go", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", base+"/certifications", token, map[string]string{"value": "CKA"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.snapshot(t, token, sessionID)
	assert.NotContains(t, resp.Resume.Skills, "Go")
	assert.Contains(t, resp.Resume.Skills, "PostgreSQL")
	assert.Contains(t, resp.Resume.Certifications, "CKA")
}

func TestSetSkills_Replaces(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "PUT", "/sessions/"+sessionID.String()+"/skills", token,
		map[string][]string{"skills": {"Go", "Kubernetes", "gRPC"}})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.snapshot(t, token, sessionID)
	assert.Equal(t, []string{"Go", "Kubernetes", "gRPC"}, resp.Resume.Skills)
}

func TestMergeAndReset(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)
	base := "/sessions/" + sessionID.String()

	rec := env.do(t, "PATCH", base+"/resume", token,
		map[string]any{"summary": "Merged summary"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.snapshot(t, token, sessionID)
	assert.Equal(t, "Merged summary", resp.Resume.Summary)

	rec = env.do(t, "POST", base+"/reset", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = env.snapshot(t, token, sessionID)
	assert.Empty(t, resp.Resume.Summary)
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	sessionID := env.createSession(t, token)

	rec := env.do(t, "DELETE", "/sessions/"+sessionID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, "GET", "/sessions/"+sessionID.String()+"/resume", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, env.server.sessions.Len())
}

func TestSession_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, "GET", "/sessions/not-a-uuid/resume", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
