package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawpairs/internal/router"
)

func TestHTTP_EndToEnd_MatchToPlaydate(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Owner y dos mascotas
	ownerID := createUser(t, ts.URL, "ana@example.com")
	lunaID := createPet(t, ts.URL, ownerID, "Luna", "dog", 0.5, 0.5)
	tobyID := createPet(t, ts.URL, ownerID, "Toby", "dog", 0.1, -0.2)
	_ = createPet(t, ts.URL, ownerID, "Lejos", "dog", 5, 5)

	// 2) Búsqueda de candidatos cerca de (0,0)
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/search?species=dog&near_lat=0&near_lng=0&radius_km=100", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var found []map[string]any
		mustDecode(t, body, &found)
		if len(found) != 2 {
			t.Fatalf("expected 2 candidates inside the box, got %d", len(found))
		}
	}

	// 3) Luna propone a Toby
	matchID := createMatch(t, ts.URL, lunaID, tobyID)

	// 4) Duplicado mientras está pending => 409; dirección inversa OK
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/matchrequests", "", map[string]any{"from_pet_id": lunaID, "to_pet_id": tobyID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate pending, got %d", st)
		}
		_ = createMatch(t, ts.URL, tobyID, lunaID)
	}

	// 5) No se puede agendar sin aceptar
	schedule := map[string]any{
		"scheduled_at":  time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"location_name": "Parque Centenario",
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/matchrequests/"+matchID+"/playdates", "", schedule)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 scheduling a pending match, got %d", st)
		}
	}

	// 6) Pending incoming de Toby
	{
		st, body := doReq(t, ts.URL, "GET", "/api/matchrequests/pending/incoming/"+tobyID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pending incoming, got %d", st)
		}
		var items []map[string]any
		mustDecode(t, body, &items)
		if len(items) != 1 || items[0]["id"] != matchID {
			t.Fatalf("unexpected pending incoming: %s", string(body))
		}
	}

	// 7) Accept => 204; reject posterior => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/matchrequests/"+matchID+"/accept", "", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 accept, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/api/matchrequests/"+matchID+"/reject", "", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 reject after accept, got %d", st)
		}
	}

	// 8) Agendar playdate
	{
		st, body := doReq(t, ts.URL, "POST", "/api/matchrequests/"+matchID+"/playdates", "", schedule)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 schedule, got %d body=%s", st, string(body))
		}
		var pd map[string]any
		mustDecode(t, body, &pd)
		if pd["pet_a_id"] != lunaID || pd["pet_b_id"] != tobyID {
			t.Fatalf("expected pets copied from match request, got %s", string(body))
		}
	}

	// 9) Listado paginado de playdates
	{
		st, body := doReq(t, ts.URL, "GET", "/api/playdates?page=1&page_size=500", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list playdates, got %d", st)
		}
		var page struct {
			Items      []map[string]any `json:"items"`
			TotalCount int              `json:"total_count"`
			PageSize   int              `json:"page_size"`
		}
		mustDecode(t, body, &page)
		if page.TotalCount != 1 || len(page.Items) != 1 || page.PageSize != 20 {
			t.Fatalf("unexpected page: %s", string(body))
		}
	}
}

func TestHTTP_ErrorMapping(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := createUser(t, ts.URL, "bob@example.com")
	petID := createPet(t, ts.URL, ownerID, "Milo", "cat", 10, 10)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"same pet", "POST", "/api/matchrequests", map[string]any{"from_pet_id": petID, "to_pet_id": petID}, http.StatusBadRequest},
		{"missing pet", "POST", "/api/matchrequests", map[string]any{"from_pet_id": petID, "to_pet_id": "ghost"}, http.StatusNotFound},
		{"accept missing", "POST", "/api/matchrequests/ghost/accept", nil, http.StatusNotFound},
		{"get missing", "GET", "/api/matchrequests/ghost", nil, http.StatusNotFound},
		{"pet unknown owner", "POST", "/api/pets", map[string]any{
			"owner_id": "ghost", "name": "X", "species": "dog", "breed_name": "Y", "energy_level": "low",
		}, http.StatusNotFound},
		{"duplicate email", "POST", "/api/users", map[string]any{
			"first_name": "Bob", "last_name": "B", "email": "BOB@example.com", "city": "Rosario",
		}, http.StatusConflict},
		{"bad species", "GET", "/api/pets/search?species=hamster", nil, http.StatusBadRequest},
		{"delete missing", "DELETE", "/api/playdates/ghost", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, "", tc.body)
		if st != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, st, string(body))
		}
	}
}

func TestHTTP_Idempotency_ReplaysMatchCreate(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := createUser(t, ts.URL, "carla@example.com")
	a := createPet(t, ts.URL, ownerID, "A", "dog", 0, 0)
	b := createPet(t, ts.URL, ownerID, "B", "dog", 0, 0)

	payload := map[string]any{"from_pet_id": a, "to_pet_id": b}
	st1, body1, h1 := doReqWithKey(t, ts.URL, "POST", "/api/matchrequests", "retry-1", payload)
	st2, body2, h2 := doReqWithKey(t, ts.URL, "POST", "/api/matchrequests", "retry-1", payload)

	if st1 != http.StatusCreated || st2 != http.StatusCreated {
		t.Fatalf("expected 201 twice (replay), got %d and %d", st1, st2)
	}
	if !bytes.Equal(body1, body2) {
		t.Fatalf("replay body differs:\n%s\n%s", body1, body2)
	}
	if h1.Get("Idempotent-Replayed") != "" || h2.Get("Idempotent-Replayed") != "true" {
		t.Fatalf("unexpected replay headers")
	}

	// Sin key, el duplicado sí llega al servicio.
	st, _ := doReq(t, ts.URL, "POST", "/api/matchrequests", "", payload)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 without idempotency key, got %d", st)
	}
}

func TestHTTP_Idempotency_KeyReusedWithOtherPair(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := createUser(t, ts.URL, "dario@example.com")
	a := createPet(t, ts.URL, ownerID, "A", "dog", 0, 0)
	b := createPet(t, ts.URL, ownerID, "B", "dog", 0, 0)

	st1, _, _ := doReqWithKey(t, ts.URL, "POST", "/api/matchrequests", "retry-2", map[string]any{"from_pet_id": a, "to_pet_id": a})
	if st1 != http.StatusBadRequest {
		t.Fatalf("expected 400 for same pet, got %d", st1)
	}

	st2, _, h2 := doReqWithKey(t, ts.URL, "POST", "/api/matchrequests", "retry-2", map[string]any{"from_pet_id": a, "to_pet_id": b})
	if st2 != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for key reused with another body, got %d", st2)
	}
	if h2.Get("Idempotent-Replayed") != "" {
		t.Fatalf("another body must not be replayed")
	}
}

// -------------------------
// Helpers
// -------------------------

func createUser(t *testing.T, baseURL, email string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/users", "", map[string]any{
		"first_name": "Test",
		"last_name":  "Owner",
		"email":      email,
		"city":       "Buenos Aires",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create user, got %d body=%s", st, string(body))
	}
	return decodeID(t, body)
}

func createPet(t *testing.T, baseURL, ownerID, name, species string, lat, lng float64) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/pets", "", map[string]any{
		"owner_id":      ownerID,
		"name":          name,
		"species":       species,
		"breed_name":    "Mestizo",
		"age_years":     3,
		"energy_level":  "medium",
		"is_vaccinated": true,
		"latitude":      lat,
		"longitude":     lng,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	return decodeID(t, body)
}

func createMatch(t *testing.T, baseURL, fromPetID, toPetID string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/api/matchrequests", "", map[string]any{
		"from_pet_id": fromPetID,
		"to_pet_id":   toPetID,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create match request, got %d body=%s", st, string(body))
	}
	return decodeID(t, body)
}

func decodeID(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	mustDecode(t, body, &out)
	if out.ID == "" {
		t.Fatalf("missing id in response: %s", string(body))
	}
	return out.ID
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, idempotencyKey string, body any) (int, []byte) {
	t.Helper()
	st, b, _ := doReqWithKey(t, baseURL, method, path, idempotencyKey, body)
	return st, b
}

func doReqWithKey(t *testing.T, baseURL, method, path, idempotencyKey string, body any) (int, []byte, http.Header) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody, res.Header
}
