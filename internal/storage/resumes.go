package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-studio/internal/types"
)

// Record represents a saved resume row
type Record struct {
	ID        uuid.UUID         `json:"id"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	Title     string            `json:"title"`
	Data      *types.ResumeData `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// RecordSummary is a listing row without the document body
type RecordSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveResume inserts a resume, or updates it when id is non-nil and owned by
// ownerID. Saving the same id twice is idempotent. A non-nil id owned by a
// different user yields (nil, nil), like GetResume. The stored document is a
// snapshot; later session edits do not touch it.
func (s *Store) SaveResume(ctx context.Context, ownerID uuid.UUID, id *uuid.UUID, title string, data *types.ResumeData) (*Record, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	var rec Record
	if id == nil {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO resumes (owner_id, title, data)
			 VALUES ($1, $2, $3)
			 RETURNING id, owner_id, title, created_at, updated_at`,
			ownerID, title, jsonBytes,
		).Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.CreatedAt, &rec.UpdatedAt)
	} else {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO resumes (id, owner_id, title, data)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET title = $3, data = $4, updated_at = NOW()
			 WHERE resumes.owner_id = $2
			 RETURNING id, owner_id, title, created_at, updated_at`,
			*id, ownerID, title, jsonBytes,
		).Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.CreatedAt, &rec.UpdatedAt)
	}
	if err != nil {
		// The conditional update returns no row when the id exists but
		// belongs to another owner.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	rec.Data = cloneDocument(jsonBytes)
	return &rec, nil
}

// ListResumes returns the owner's saved resumes, most recently updated first
func (s *Store) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]RecordSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, created_at, updated_at
		 FROM resumes WHERE owner_id = $1
		 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []RecordSummary{}
	for rows.Next() {
		var rs RecordSummary
		if err := rows.Scan(&rs.ID, &rs.Title, &rs.CreatedAt, &rs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		summaries = append(summaries, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// GetResume retrieves a saved resume by id, or nil when not found or owned
// by someone else. The returned document is a fresh, normalized copy.
func (s *Store) GetResume(ctx context.Context, ownerID, id uuid.UUID) (*Record, error) {
	var rec Record
	var jsonBytes []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, data, created_at, updated_at
		 FROM resumes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&rec.ID, &rec.OwnerID, &rec.Title, &jsonBytes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	rec.Data = cloneDocument(jsonBytes)
	if rec.Data == nil {
		return nil, fmt.Errorf("failed to decode stored resume %s", id)
	}
	return &rec, nil
}

// DeleteResume removes a saved resume. Deleting a missing id is a no-op.
func (s *Store) DeleteResume(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// cloneDocument decodes stored JSON into a fresh ResumeData so no caller
// shares state with another load of the same record.
func cloneDocument(jsonBytes []byte) *types.ResumeData {
	var data types.ResumeData
	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return nil
	}
	data.Normalize()
	return &data
}
