package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pawpairs/internal/domain/pets"
	"pawpairs/internal/platform/apperr"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_id,
	name, species, breed_name, age_years, energy_level,
	is_vaccinated, latitude, longitude,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		string(p.Species),
		p.BreedName,
		p.AgeYears,
		string(p.EnergyLevel),
		p.IsVaccinated,
		p.Latitude,
		p.Longitude,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			breed_name = $3,
			age_years = $4,
			energy_level = $5,
			is_vaccinated = $6,
			latitude = $7,
			longitude = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.BreedName,
		p.AgeYears,
		string(p.EnergyLevel),
		p.IsVaccinated,
		p.Latitude,
		p.Longitude,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFound("pet")
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, apperr.NotFound("pet")
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, apperr.NotFound("pet")
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return []pets.Pet{}, nil
	}
	return r.query(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY name ASC, id ASC`, ownerID)
}

func (r *PetsRepo) List(ctx context.Context, skip, take int) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY name ASC, id ASC OFFSET $1 LIMIT $2`, skip, take)
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pets: %w", err)
	}
	return n, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete pet: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Search empuja species/energy y la bounding box al WHERE.
func (r *PetsRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	where, args := searchClause(f)
	q := `SELECT ` + petColumns + ` FROM pets`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY name ASC, id ASC`
	return r.query(ctx, q, args...)
}

func searchClause(f pets.SearchFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Species != nil {
		add("species = $%d", string(*f.Species))
	}
	if f.EnergyLevel != nil {
		add("energy_level = $%d", string(*f.EnergyLevel))
	}
	if box, ok := f.Box(); ok {
		add("latitude >= $%d", box.MinLat)
		add("latitude <= $%d", box.MaxLat)
		if !box.AllLongitudes {
			add("longitude >= $%d", box.MinLng)
			add("longitude <= $%d", box.MaxLng)
		}
	}
	return strings.Join(conds, " AND "), args
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query pets: %w", err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p       pets.Pet
		species string
		energy  string
	)
	err := s.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&species,
		&p.BreedName,
		&p.AgeYears,
		&energy,
		&p.IsVaccinated,
		&p.Latitude,
		&p.Longitude,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Species = pets.Species(species)
	p.EnergyLevel = pets.EnergyLevel(energy)
	return p, err
}
