package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pawpairs/internal/domain/matches"
	"pawpairs/internal/platform/apperr"
)

// Índice parcial único (from_pet_id, to_pet_id) WHERE status = 'pending'.
const pendingPairKey = "match_requests_pending_pair_key"

type MatchesRepo struct {
	db *sql.DB
}

func NewMatchesRepo(db *sql.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

const matchColumns = `id, from_pet_id, to_pet_id, status, created_at`

// CreatePending delega la unicidad del par pending en el índice parcial: no hay
// ventana entre chequeo e insert.
func (r *MatchesRepo) CreatePending(ctx context.Context, m matches.MatchRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO match_requests (`+matchColumns+`)
		VALUES ($1,$2,$3,$4,$5)
	`, m.ID, m.FromPetID, m.ToPetID, string(matches.StatusPending), m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, pendingPairKey) {
			return matches.ErrDuplicatePending
		}
		return fmt.Errorf("insert match request: %w", err)
	}
	return nil
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.MatchRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return matches.MatchRequest{}, apperr.NotFound("match request")
	}

	m, err := scanMatch(r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM match_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matches.MatchRequest{}, apperr.NotFound("match request")
		}
		return matches.MatchRequest{}, fmt.Errorf("get match request: %w", err)
	}
	return m, nil
}

func (r *MatchesRepo) List(ctx context.Context, skip, take int) ([]matches.MatchRequest, error) {
	return r.query(ctx, `
		SELECT `+matchColumns+` FROM match_requests
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`, skip, take)
}

func (r *MatchesRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count match requests: %w", err)
	}
	return n, nil
}

func (r *MatchesRepo) ListBy(ctx context.Context, f matches.Filter) ([]matches.MatchRequest, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col, v string) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.FromPetID != "" {
		add("from_pet_id", f.FromPetID)
	}
	if f.ToPetID != "" {
		add("to_pet_id", f.ToPetID)
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}

	q := `SELECT ` + matchColumns + ` FROM match_requests`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`
	return r.query(ctx, q, args...)
}

// Transition es un UPDATE condicional sobre el status. Si no toca filas se
// distingue "no existe" de "ya no está en from" con una segunda lectura.
func (r *MatchesRepo) Transition(ctx context.Context, id string, from, to matches.Status) (matches.MatchRequest, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx, `
		UPDATE match_requests
		SET status = $3
		WHERE id = $1 AND status = $2
		RETURNING `+matchColumns,
		id, string(from), string(to),
	))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return matches.MatchRequest{}, fmt.Errorf("transition match request: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM match_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return matches.MatchRequest{}, fmt.Errorf("transition match request: %w", err)
	}
	if !exists {
		return matches.MatchRequest{}, apperr.NotFound("match request")
	}
	return matches.MatchRequest{}, matches.ErrInvalidTransition
}

func (r *MatchesRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM match_requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete match request: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *MatchesRepo) query(ctx context.Context, q string, args ...any) ([]matches.MatchRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query match requests: %w", err)
	}
	defer rows.Close()

	out := make([]matches.MatchRequest, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match request: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMatch(s scanner) (matches.MatchRequest, error) {
	var (
		m      matches.MatchRequest
		status string
	)
	err := s.Scan(&m.ID, &m.FromPetID, &m.ToPetID, &status, &m.CreatedAt)
	m.Status = matches.Status(status)
	m.CreatedAt = m.CreatedAt.UTC()
	return m, err
}
