package roadmaps

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new roadmap.
func (r *PGRepo) Create(ctx context.Context, roadmap Roadmap) error {
	const query = `
INSERT INTO roadmaps (id, profile_name, profile_email, responses, payload, export_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	responses, err := marshalJSONB(roadmap.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	payload, err := json.Marshal(roadmap.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		roadmap.ID,
		nullString(roadmap.Profile.Name),
		nullString(roadmap.Profile.Email),
		responses,
		payload,
		nullString(roadmap.ExportKey),
		roadmap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert roadmap: %w", err)
	}
	return nil
}

// GetByID returns a roadmap by ID.
func (r *PGRepo) GetByID(ctx context.Context, roadmapID string) (Roadmap, error) {
	const query = `
SELECT id, profile_name, profile_email, responses, payload, export_key, created_at
FROM roadmaps
WHERE id = $1
LIMIT 1`
	var (
		rm        Roadmap
		name      sql.NullString
		email     sql.NullString
		responses []byte
		payload   []byte
		exportKey sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, roadmapID).Scan(
		&rm.ID,
		&name,
		&email,
		&responses,
		&payload,
		&exportKey,
		&rm.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Roadmap{}, ErrNotFound
	}
	if err != nil {
		return Roadmap{}, fmt.Errorf("select roadmap: %w", err)
	}
	rm.Profile = Profile{Name: name.String, Email: email.String}
	rm.ExportKey = exportKey.String
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &rm.Responses); err != nil {
			return Roadmap{}, fmt.Errorf("decode responses: %w", err)
		}
		rm.Responses = restoreLists(rm.Responses)
	}
	if err := json.Unmarshal(payload, &rm.Payload); err != nil {
		return Roadmap{}, fmt.Errorf("decode payload: %w", err)
	}
	return rm, nil
}

// SetExportKey records where the export document was archived.
func (r *PGRepo) SetExportKey(ctx context.Context, roadmapID, exportKey string) error {
	const query = `UPDATE roadmaps SET export_key = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, roadmapID, exportKey)
	if err != nil {
		return fmt.Errorf("update export key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update export key: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalJSONB(value map[string]any) ([]byte, error) {
	if len(value) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
