package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pawpairs/internal/domain/playdates"
	"pawpairs/internal/platform/apperr"
)

type PlaydatesRepo struct {
	db *sql.DB
}

func NewPlaydatesRepo(db *sql.DB) *PlaydatesRepo {
	return &PlaydatesRepo{db: db}
}

const playdateColumns = `id, pet_a_id, pet_b_id, scheduled_at, location_name, notes, created_at`

func (r *PlaydatesRepo) Create(ctx context.Context, p playdates.Playdate) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO playdates (`+playdateColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, p.ID, p.PetAID, p.PetBID, p.ScheduledAt, p.LocationName, p.Notes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert playdate: %w", err)
	}
	return nil
}

func (r *PlaydatesRepo) Update(ctx context.Context, p playdates.Playdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE playdates
		SET scheduled_at = $2, location_name = $3, notes = $4
		WHERE id = $1
	`, p.ID, p.ScheduledAt, p.LocationName, p.Notes)
	if err != nil {
		return fmt.Errorf("update playdate: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFound("playdate")
	}
	return nil
}

func (r *PlaydatesRepo) GetByID(ctx context.Context, id string) (playdates.Playdate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return playdates.Playdate{}, apperr.NotFound("playdate")
	}

	p, err := scanPlaydate(r.db.QueryRowContext(ctx, `SELECT `+playdateColumns+` FROM playdates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return playdates.Playdate{}, apperr.NotFound("playdate")
		}
		return playdates.Playdate{}, fmt.Errorf("get playdate: %w", err)
	}
	return p, nil
}

func (r *PlaydatesRepo) List(ctx context.Context, skip, take int) ([]playdates.Playdate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+playdateColumns+` FROM playdates
		ORDER BY scheduled_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`, skip, take)
	if err != nil {
		return nil, fmt.Errorf("list playdates: %w", err)
	}
	defer rows.Close()

	out := make([]playdates.Playdate, 0)
	for rows.Next() {
		p, err := scanPlaydate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playdate: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlaydatesRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM playdates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count playdates: %w", err)
	}
	return n, nil
}

func (r *PlaydatesRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playdates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete playdate: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func scanPlaydate(s scanner) (playdates.Playdate, error) {
	var p playdates.Playdate
	err := s.Scan(&p.ID, &p.PetAID, &p.PetBID, &p.ScheduledAt, &p.LocationName, &p.Notes, &p.CreatedAt)
	p.ScheduledAt = p.ScheduledAt.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}
