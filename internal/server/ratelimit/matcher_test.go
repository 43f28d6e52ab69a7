package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEndpoint_Exact(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/auth/login", Method: http.MethodPost, Limit: 10, Window: time.Minute},
	}

	match := MatchEndpoint("/auth/login", http.MethodPost, configs)
	require.NotNil(t, match)
	assert.Equal(t, 10, match.Limit)

	assert.Nil(t, MatchEndpoint("/auth/login", http.MethodGet, configs),
		"method is part of the match")
}

func TestMatchEndpoint_Suffix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "*/generate", Method: http.MethodPost, Limit: 30, Window: time.Hour},
	}

	match := MatchEndpoint("/sessions/abc-123/generate", http.MethodPost, configs)
	require.NotNil(t, match)
	assert.Equal(t, 30, match.Limit)

	assert.Nil(t, MatchEndpoint("/sessions/abc-123/analyze", http.MethodPost, configs))
}

func TestMatchEndpoint_Prefix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/resumes/", Method: http.MethodDelete, Limit: 100, Window: time.Minute},
	}

	match := MatchEndpoint("/resumes/abc-123", http.MethodDelete, configs)
	require.NotNil(t, match)
	assert.Equal(t, 100, match.Limit)
}

func TestMatchEndpoint_HealthUnlimited(t *testing.T) {
	match := MatchEndpoint("/health", http.MethodGet, nil)
	require.NotNil(t, match)
	assert.Equal(t, 0, match.Limit, "zero limit marks the endpoint unmetered")
}
