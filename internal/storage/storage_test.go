package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneDocument_FreshCopies(t *testing.T) {
	stored := []byte(`{
		"personalInfo": {"fullName": "Jane Doe"},
		"summary": "Engineer",
		"experiences": [{"id": "", "company": "Acme", "position": "Dev", "startDate": "2020-01", "endDate": "", "responsibilities": ["Did things"], "isCurrent": true}],
		"education": [],
		"skills": ["Go"],
		"certifications": []
	}`)

	first := cloneDocument(stored)
	second := cloneDocument(stored)
	require.NotNil(t, first)
	require.NotNil(t, second)

	// Loads never share slices
	first.Skills[0] = "Rust"
	assert.Equal(t, "Go", second.Skills[0])

	// Normalize repairs missing identity tokens and empty sections
	assert.NotEmpty(t, first.Experiences[0].ID)
	require.NotEmpty(t, first.Education, "empty education gets a placeholder row")
}

func TestCloneDocument_Malformed(t *testing.T) {
	assert.Nil(t, cloneDocument([]byte("{ not json }")))
}
