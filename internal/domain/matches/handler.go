package matches

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pawpairs/internal/platform/apperr"
	"pawpairs/internal/platform/paging"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /matchrequests. nested recibe el mismo subrouter para que otros
// módulos (playdates) cuelguen rutas de /matchrequests/{matchID} sin conflictos de params.
func RegisterRoutes(r chi.Router, svc *Service, nested ...func(chi.Router)) {
	r.Route("/matchrequests", func(mr chi.Router) {
		mr.Get("/", listMatchRequestsHandler(svc))
		mr.Post("/", createMatchRequestHandler(svc))

		mr.Get("/incoming/{petID}", listByPetHandler(svc.ListIncoming))
		mr.Get("/outgoing/{petID}", listByPetHandler(svc.ListOutgoing))
		mr.Get("/pending/incoming/{petID}", listByPetHandler(svc.ListPendingIncoming))
		mr.Get("/pending/outgoing/{petID}", listByPetHandler(svc.ListPendingOutgoing))

		mr.Get("/{matchID}", getMatchRequestHandler(svc))
		mr.Delete("/{matchID}", deleteMatchRequestHandler(svc))
		mr.Post("/{matchID}/accept", transitionHandler(svc.Accept))
		mr.Post("/{matchID}/reject", transitionHandler(svc.Reject))

		for _, fn := range nested {
			fn(mr)
		}
	})
}

type createMatchRequestRequest struct {
	FromPetID string `json:"from_pet_id"`
	ToPetID   string `json:"to_pet_id"`
}

type matchRequestResponse struct {
	ID        string    `json:"id"`
	FromPetID string    `json:"from_pet_id"`
	ToPetID   string    `json:"to_pet_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// listMatchRequestsHandler godoc
// @Summary Listar match requests
// @Description Ordenadas por created_at desc.
// @Tags matchrequests
// @Produce json
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Tamaño de página 1..100 (default 20)"
// @Success 200 {object} paging.Result[matchRequestResponse]
// @Router /matchrequests [get]
func listMatchRequestsHandler(svc *Service) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, paging.NewResult(toMatchRequestResponses(items), total, p))
	}
}

// createMatchRequestHandler godoc
// @Summary Proponer un match
// @Tags matchrequests
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Clave de idempotencia"
// @Param payload body createMatchRequestRequest true "Mascotas origen y destino"
// @Success 201 {object} matchRequestResponse
// @Failure 400 {string} string "ids iguales / faltantes"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "ya existe un pending para el par"
// @Router /matchrequests [post]
func createMatchRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), req.FromPetID, req.ToPetID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMatchRequestResponse(m))
	}
}

func getMatchRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "matchID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMatchRequestResponse(m))
	}
}

// listByPetHandler sirve los cuatro listados por dirección (y status).
func listByPetHandler(list func(ctx context.Context, petID string) ([]MatchRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMatchRequestResponses(items))
	}
}

// transitionHandler godoc
// @Summary Aceptar / rechazar un match request
// @Description Solo desde pending. 204 si la transición se aplicó.
// @Tags matchrequests
// @Param matchID path string true "Match request ID"
// @Param Idempotency-Key header string false "Clave de idempotencia"
// @Success 204
// @Failure 404 {string} string "match request not found"
// @Failure 409 {string} string "invalid state transition"
// @Router /matchrequests/{matchID}/accept [post]
// @Router /matchrequests/{matchID}/reject [post]
func transitionHandler(apply func(ctx context.Context, id string) (MatchRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := apply(r.Context(), chi.URLParam(r, "matchID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteMatchRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.Delete(r.Context(), chi.URLParam(r, "matchID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			http.Error(w, "match request not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toMatchRequestResponse(m MatchRequest) matchRequestResponse {
	return matchRequestResponse{
		ID:        m.ID,
		FromPetID: m.FromPetID,
		ToPetID:   m.ToPetID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

func toMatchRequestResponses(items []MatchRequest) []matchRequestResponse {
	out := make([]matchRequestResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toMatchRequestResponse(m))
	}
	return out
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
