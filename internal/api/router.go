package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/aditigupta-200/ESG-Questionnaire/internal/middleware"
	"github.com/aditigupta-200/ESG-Questionnaire/internal/observability/metrics"
	"github.com/aditigupta-200/ESG-Questionnaire/internal/services"
)

type Router struct {
	store     Store
	auth      *services.AuthService
	responses *services.ResponseService
}

func NewRouter(store Store) *Router {
	return &Router{
		store:     store,
		auth:      services.NewAuthService(newAuthStoreAdapter(store), middleware.SignToken),
		responses: services.NewResponseService(newResponseStoreAdapter(store)),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST
	mux.HandleFunc("/api/auth/logout", rt.handleLogout)     // POST

	mux.Handle("/api/responses", middleware.RequireAuth(http.HandlerFunc(rt.handleResponses)))       // POST, GET
	mux.Handle("/api/responses/", middleware.RequireAuth(http.HandlerFunc(rt.handleResponseScoped))) // GET, DELETE /api/responses/{year}
	mux.Handle("/api/export", middleware.RequireAuth(http.HandlerFunc(rt.handleExport)))             // GET
	mux.Handle("/api/metrics/summary", middleware.RequireAuth(http.HandlerFunc(rt.handleSummary)))   // GET
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a ServiceError to its HTTP status. Anything unrecognized is
// logged server-side and reported as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		}
		body := map[string]any{"error": se.Message}
		if len(se.Fields) > 0 {
			body["details"] = se.Fields
		}
		writeJSON(w, status, body)
		return
	}
	log.Printf("api: internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
}

// decodeStrict decodes a JSON body and rejects unknown fields so client drift
// fails loudly instead of being silently dropped.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := err.Error()
		if strings.HasPrefix(msg, "json: unknown field ") {
			field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
			return services.NewValidationError(map[string]string{field: "unknown field"})
		}
		return services.NewInvalidError("invalid JSON body")
	}
	return nil
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func authResponse(res *services.AuthResult) map[string]any {
	return map[string]any{
		"token": res.Token,
		"user":  userView{ID: res.User.ID, Name: res.User.Name, Email: res.User.Email},
	}
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := rt.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		metrics.ObserveRegistration("error")
		writeError(w, err)
		return
	}
	metrics.ObserveRegistration("ok")
	writeJSON(w, http.StatusOK, authResponse(res))
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse(res))
}

// POST /api/auth/logout — stateless tokens, the client just drops its copy.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// POST /api/responses — submit (upsert) one financial year.
// GET  /api/responses — list the caller's records, year ascending.
func (rt *Router) handleResponses(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	switch r.Method {
	case http.MethodPost:
		var req services.SubmitRequest
		if err := decodeStrict(r, &req); err != nil {
			metrics.ObserveSubmission("invalid")
			writeError(w, err)
			return
		}
		rec, err := rt.responses.Submit(uid, &req)
		if err != nil {
			if se, ok := services.AsServiceError(err); ok && se.Code == services.ErrorInvalid {
				metrics.ObserveSubmission("invalid")
			} else {
				metrics.ObserveSubmission("error")
			}
			writeError(w, err)
			return
		}
		metrics.ObserveSubmission("ok")
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    rec,
			"message": fmt.Sprintf("ESG data for %s saved successfully", rec.FinancialYear),
		})
	case http.MethodGet:
		recs, err := rt.responses.List(uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": recs, "count": len(recs)})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
	}
}

// GET/DELETE /api/responses/{year}
func (rt *Router) handleResponseScoped(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/responses/")
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	year, err := url.PathUnescape(rest)
	if err != nil {
		writeError(w, services.NewInvalidError("invalid financial year"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		rec, err := rt.responses.Get(uid, year)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": rec})
	case http.MethodDelete:
		if err := rt.responses.Delete(uid, year); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": fmt.Sprintf("ESG data for %s deleted successfully", year),
		})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
	}
}

// GET /api/export?format=csv
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" {
		writeError(w, services.NewInvalidError("unsupported format"))
		return
	}
	recs, err := rt.responses.List(uid)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := services.ExportResponsesCSV(recs)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=esg_responses.csv")
	_, _ = w.Write(b)
}

// GET /api/metrics/summary — derived ratio series for the dashboard chart.
func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	recs, err := rt.responses.List(uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": services.BuildSummary(recs)})
}
