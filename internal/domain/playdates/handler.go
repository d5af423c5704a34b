package playdates

import (
	"encoding/json"
	"net/http"
	"time"

	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/playdates", func(pr chi.Router) {
		pr.Get("/", listPlaydatesHandler(svc))
		pr.Post("/", createPlaydateHandler(svc))
		pr.Get("/{playdateID}", getPlaydateHandler(svc))
		pr.Put("/{playdateID}", updatePlaydateHandler(svc))
		pr.Delete("/{playdateID}", deletePlaydateHandler(svc))
	})
}

// MatchRoutes cuelga POST /{matchID}/playdates del subrouter de /matchrequests.
func MatchRoutes(svc *Service) func(chi.Router) {
	return func(mr chi.Router) {
		mr.Post("/{matchID}/playdates", schedulePlaydateHandler(svc))
	}
}

type scheduleRequest struct {
	ScheduledAt  time.Time `json:"scheduled_at"`
	LocationName string    `json:"location_name"`
	Notes        string    `json:"notes"`
}

type createPlaydateRequest struct {
	PetAID       string    `json:"pet_a_id"`
	PetBID       string    `json:"pet_b_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	LocationName string    `json:"location_name"`
	Notes        string    `json:"notes"`
}

type playdateResponse struct {
	ID           string    `json:"id"`
	PetAID       string    `json:"pet_a_id"`
	PetBID       string    `json:"pet_b_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	LocationName string    `json:"location_name"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// schedulePlaydateHandler godoc
// @Summary Agendar playdate desde un match aceptado
// @Tags matchrequests
// @Accept json
// @Produce json
// @Param matchID path string true "Match request ID"
// @Param Idempotency-Key header string false "Clave de idempotencia"
// @Param payload body scheduleRequest true "Fecha (RFC3339), lugar y notas"
// @Success 201 {object} playdateResponse
// @Failure 400 {string} string "validación"
// @Failure 404 {string} string "match request / pet not found"
// @Failure 409 {string} string "el match request no está aceptado"
// @Router /matchrequests/{matchID}/playdates [post]
func schedulePlaydateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Schedule(r.Context(), chi.URLParam(r, "matchID"), ScheduleInput{
			ScheduledAt:  req.ScheduledAt,
			LocationName: req.LocationName,
			Notes:        req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPlaydateResponse(p))
	}
}

// listPlaydatesHandler godoc
// @Summary Listar playdates
// @Description Ordenadas por scheduled_at desc.
// @Tags playdates
// @Produce json
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Tamaño de página 1..100 (default 20)"
// @Success 200 {object} paging.Result[playdateResponse]
// @Router /playdates [get]
func listPlaydatesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := paging.FromQuery(r)

		total, err := svc.Count(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		items, err := svc.List(r.Context(), p.Skip(), p.Take())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]playdateResponse, 0, len(items))
		for _, pd := range items {
			out = append(out, toPlaydateResponse(pd))
		}
		writeJSON(w, http.StatusOK, paging.NewResult(out, total, p))
	}
}

// createPlaydateHandler godoc
// @Summary Crear playdate ad hoc
// @Tags playdates
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Clave de idempotencia"
// @Param payload body createPlaydateRequest true "Datos de la playdate"
// @Success 201 {object} playdateResponse
// @Failure 400 {string} string "validación"
// @Failure 404 {string} string "pet not found"
// @Router /playdates [post]
func createPlaydateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlaydateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			PetAID:       req.PetAID,
			PetBID:       req.PetBID,
			ScheduledAt:  req.ScheduledAt,
			LocationName: req.LocationName,
			Notes:        req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPlaydateResponse(p))
	}
}

func getPlaydateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "playdateID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlaydateResponse(p))
	}
}

func updatePlaydateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "playdateID"), UpdateInput{
			ScheduledAt:  req.ScheduledAt,
			LocationName: req.LocationName,
			Notes:        req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlaydateResponse(p))
	}
}

func deletePlaydateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.Delete(r.Context(), chi.URLParam(r, "playdateID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "playdate not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPlaydateResponse(p Playdate) playdateResponse {
	return playdateResponse{
		ID:           p.ID,
		PetAID:       p.PetAID,
		PetBID:       p.PetBID,
		ScheduledAt:  p.ScheduledAt,
		LocationName: p.LocationName,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
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
