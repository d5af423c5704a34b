package pets

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pawpairs/internal/geo"
	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		// Búsqueda de candidatos para proponer un match.
		pr.Get("/search", searchPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	OwnerID      string  `json:"owner_id"`
	Name         string  `json:"name"`
	Species      string  `json:"species"`
	BreedName    string  `json:"breed_name"`
	AgeYears     int     `json:"age_years"`
	EnergyLevel  string  `json:"energy_level"`
	IsVaccinated bool    `json:"is_vaccinated"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type updatePetRequest struct {
	Name         string  `json:"name"`
	BreedName    string  `json:"breed_name"`
	AgeYears     int     `json:"age_years"`
	EnergyLevel  string  `json:"energy_level"`
	IsVaccinated bool    `json:"is_vaccinated"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type petResponse struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"owner_id"`
	Name         string      `json:"name"`
	Species      Species     `json:"species"`
	BreedName    string      `json:"breed_name"`
	AgeYears     int         `json:"age_years"`
	EnergyLevel  EnergyLevel `json:"energy_level"`
	IsVaccinated bool        `json:"is_vaccinated"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Param owner_id query string false "Filtrar por owner"
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Tamaño de página 1..100 (default 20)"
// @Success 200 {object} paging.Result[petResponse]
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := paging.FromQuery(r)

		var (
			items []Pet
			total int
			err   error
		)
		if ownerID := strings.TrimSpace(r.URL.Query().Get("owner_id")); ownerID != "" {
			var all []Pet
			all, err = svc.ListByOwner(r.Context(), ownerID)
			total = len(all)
			items = paging.Window(all, p.Skip(), p.Take())
		} else {
			total, err = svc.Count(r.Context())
			if err == nil {
				items, err = svc.List(r.Context(), p.Skip(), p.Take())
			}
		}
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, pet := range items {
			out = append(out, toPetResponse(pet))
		}
		writeJSON(w, http.StatusOK, paging.NewResult(out, total, p))
	}
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "owner not found"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			OwnerID:      req.OwnerID,
			Name:         req.Name,
			Species:      req.Species,
			BreedName:    req.BreedName,
			AgeYears:     req.AgeYears,
			EnergyLevel:  req.EnergyLevel,
			IsVaccinated: req.IsVaccinated,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// searchPetsHandler godoc
// @Summary Buscar candidatos
// @Description Filtro por especie, nivel de energía y cercanía (bounding box, no círculo).
// @Tags pets
// @Produce json
// @Param species query string false "dog | cat | other"
// @Param energy_level query string false "low | medium | high"
// @Param near_lat query number false "Latitud del centro"
// @Param near_lng query number false "Longitud del centro"
// @Param radius_km query number false "Radio en km; <= 0 desactiva el filtro"
// @Success 200 {array} petResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Router /pets/search [get]
func searchPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseSearchQuery(r)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := svc.Search(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), UpdateInput{
			Name:         req.Name,
			BreedName:    req.BreedName,
			AgeYears:     req.AgeYears,
			EnergyLevel:  req.EnergyLevel,
			IsVaccinated: req.IsVaccinated,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.Delete(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseSearchQuery: near_lat y near_lng van juntos; si falta uno no hay filtro geográfico.
func parseSearchQuery(r *http.Request) (SearchQuery, error) {
	qs := r.URL.Query()
	var q SearchQuery

	if v := strings.TrimSpace(qs.Get("species")); v != "" {
		s, ok := ParseSpecies(v)
		if !ok {
			return SearchQuery{}, apperr.Invalid("species must be one of dog, cat, other")
		}
		q.Species = &s
	}
	if v := strings.TrimSpace(qs.Get("energy_level")); v != "" {
		e, ok := ParseEnergyLevel(v)
		if !ok {
			return SearchQuery{}, apperr.Invalid("energy_level must be one of low, medium, high")
		}
		q.EnergyLevel = &e
	}

	lat, hasLat, err := parseFloat(qs.Get("near_lat"), "near_lat")
	if err != nil {
		return SearchQuery{}, err
	}
	lng, hasLng, err := parseFloat(qs.Get("near_lng"), "near_lng")
	if err != nil {
		return SearchQuery{}, err
	}
	if hasLat && hasLng {
		q.Near = &geo.Point{Lat: lat, Lng: lng}
	}

	radius, _, err := parseFloat(qs.Get("radius_km"), "radius_km")
	if err != nil {
		return SearchQuery{}, err
	}
	q.RadiusKm = radius
	return q, nil
}

func parseFloat(raw, name string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, apperr.Invalid("%s must be a number", name)
	}
	return f, true, nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Species:      p.Species,
		BreedName:    p.BreedName,
		AgeYears:     p.AgeYears,
		EnergyLevel:  p.EnergyLevel,
		IsVaccinated: p.IsVaccinated,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
