package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mmrzaf/rdgen/internal/app"
	"github.com/mmrzaf/rdgen/internal/domain"
	"github.com/mmrzaf/rdgen/internal/infra/repos/runs"
	"github.com/mmrzaf/rdgen/internal/infra/repos/schemas"
)

type Handler struct {
	svc *app.GenerateService
}

func NewHandler(svc *app.GenerateService) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the v1 routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/fields", h.ListFields)
	mux.HandleFunc("GET /api/v1/schemas", h.ListSchemas)
	mux.HandleFunc("GET /api/v1/schemas/{id}", h.GetSchema)
	mux.HandleFunc("POST /api/v1/generate", h.Generate)
	mux.HandleFunc("POST /api/v1/targets/check", h.CheckTarget)
	mux.HandleFunc("GET /api/v1/runs", h.ListRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", h.GetRun)
}

func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.FieldTypes())
}

func (h *Handler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListSchemas()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sc, err := h.svc.GetSchema(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, schemas.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, sc)
}

type generateResponse struct {
	Run  *domain.Run     `json:"run"`
	Rows json.RawMessage `json:"rows"`
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.Generate(&req)
	if err != nil {
		http.Error(w, err.Error(), generateStatus(err))
		return
	}

	// Both formats serialize to the same JSON array on the wire.
	body := []byte(res.JSON)
	if res.JSON == "" {
		rows := res.Rows
		if rows == nil {
			rows = []domain.Row{}
		}
		body, err = json.Marshal(rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(generateResponse{Run: res.Run, Rows: body})
}

// generateStatus separates caller mistakes from failures on our side, such
// as the run history or the target refusing a write.
func generateStatus(err error) int {
	var ve *app.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, schemas.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) CheckTarget(w http.ResponseWriter, r *http.Request) {
	var cfg domain.TargetConfig
	if err := decodeJSONStrict(r, &cfg); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.CheckTarget(&cfg)
	if res != nil {
		writeJSON(w, res)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	list, err := h.svc.ListRuns(limit, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, list)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := h.svc.GetRun(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, runs.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, run)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSONStrict(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
