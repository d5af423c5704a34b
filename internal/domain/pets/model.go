package pets

import (
	"strings"
	"time"

	"pawpairs/internal/geo"
)

// Species define las especies soportadas. Abierto a extensión.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog, true
	case SpeciesCat:
		return SpeciesCat, true
	case SpeciesOther:
		return SpeciesOther, true
	default:
		return "", false
	}
}

// EnergyLevel es ordinal: low < medium < high.
// @Enum low, medium, high
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

func ParseEnergyLevel(s string) (EnergyLevel, bool) {
	e := EnergyLevel(strings.ToLower(strings.TrimSpace(s)))
	if e.Rank() == 0 {
		return "", false
	}
	return e, true
}

// Rank devuelve 1..3, o 0 si el nivel no es válido.
func (e EnergyLevel) Rank() int {
	switch e {
	case EnergyLow:
		return 1
	case EnergyMedium:
		return 2
	case EnergyHigh:
		return 3
	default:
		return 0
	}
}

// Pet es el registro del directorio de mascotas. OwnerID referencia a users.User por identidad.
type Pet struct {
	ID      string
	OwnerID string

	Name        string
	Species     Species
	BreedName   string
	AgeYears    int
	EnergyLevel EnergyLevel

	IsVaccinated bool

	Latitude  float64
	Longitude float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) Position() geo.Point {
	return geo.Point{Lat: p.Latitude, Lng: p.Longitude}
}
