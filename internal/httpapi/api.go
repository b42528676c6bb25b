package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/pomodoro"
	"github.com/studyloop/studyloop/internal/service"
)

// API bundles the service layer behind REST handlers. Every data route is
// wrapped in bearer authentication and scoped to the resolved owner.
type API struct {
	Users     service.UserService
	Sessions  service.SessionService
	Todos     service.TodoService
	Analytics service.AnalyticsService
	Insights  service.InsightService
	Settings  pomodoro.Settings
	Logger    *slog.Logger
}

// Routes returns the fully wired handler.
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.handleHealth)

	mux.HandleFunc("POST /sessions", a.auth(a.handleSessionStart))
	mux.HandleFunc("GET /sessions", a.auth(a.handleSessionList))
	mux.HandleFunc("GET /sessions/active", a.auth(a.handleSessionActive))
	mux.HandleFunc("PUT /sessions/{id}", a.auth(a.handleSessionUpdate))

	mux.HandleFunc("GET /todos", a.auth(a.handleTodoList))
	mux.HandleFunc("POST /todos", a.auth(a.handleTodoCreate))
	mux.HandleFunc("PUT /todos/{id}", a.auth(a.handleTodoUpdate))
	mux.HandleFunc("DELETE /todos/{id}", a.auth(a.handleTodoDelete))

	mux.HandleFunc("GET /analytics", a.auth(a.handleAnalytics))
	mux.HandleFunc("GET /analytics/daily", a.auth(a.handleDailyHours))
	mux.HandleFunc("GET /analytics/split", a.auth(a.handleCompletionSplit))
	mux.HandleFunc("GET /analytics/streak", a.auth(a.handleStreak))

	return a.logRequests(mux)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ── sessions ─────────────────────────────────────────────────────────────────

type startSessionRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

func (a *API) handleSessionStart(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	var req startSessionRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	sess, err := a.Sessions.Start(r.Context(), owner.ID, req.Name, req.Subject)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"session": toSessionDTO(sess)})
}

func (a *API) handleSessionList(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	sessions, err := a.Sessions.List(r.Context(), owner.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	dtos := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		dtos = append(dtos, toSessionDTO(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": dtos})
}

// handleSessionActive returns the open session together with the reconciled
// remaining work-phase seconds. An unreconcilable session is a 409 so the
// client can prompt the user to end or restart it.
func (a *API) handleSessionActive(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	sess, remaining, err := a.Sessions.Resume(r.Context(), owner.ID, a.Settings.Work)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	dto := toSessionDTO(sess)
	writeJSON(w, http.StatusOK, map[string]any{
		"session":           dto,
		"remaining_seconds": int(remaining / time.Second),
	})
}

type updateSessionRequest struct {
	Action  string `json:"action"` // complete-phase | close
	Minutes int    `json:"minutes"`
}

func (a *API) handleSessionUpdate(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	var req updateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	var (
		sess *domain.StudySession
		err  error
	)
	switch req.Action {
	case "complete-phase":
		sess, err = a.Sessions.CompletePhase(r.Context(), owner.ID, r.PathValue("id"), req.Minutes)
	case "close":
		sess, err = a.Sessions.Close(r.Context(), owner.ID, r.PathValue("id"), req.Minutes)
	default:
		err = fmt.Errorf("unknown action %q: %w", req.Action, service.ErrValidation)
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": toSessionDTO(sess)})
}

// ── todos ────────────────────────────────────────────────────────────────────

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (a *API) handleTodoCreate(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	var req createTodoRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	todo, err := a.Todos.Create(r.Context(), owner.ID, req.Title, req.Description)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"todo": toTodoDTO(todo)})
}

func (a *API) handleTodoList(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	todos, err := a.Todos.List(r.Context(), owner.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	dtos := make([]todoDTO, 0, len(todos))
	for _, t := range todos {
		dtos = append(dtos, toTodoDTO(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"todos": dtos})
}

type updateTodoRequest struct {
	Completed bool `json:"completed"`
}

func (a *API) handleTodoUpdate(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	var req updateTodoRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	todo, err := a.Todos.Toggle(r.Context(), owner.ID, r.PathValue("id"), req.Completed)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"todo": toTodoDTO(todo)})
}

func (a *API) handleTodoDelete(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	if err := a.Todos.Delete(r.Context(), owner.ID, r.PathValue("id")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── analytics ────────────────────────────────────────────────────────────────

func (a *API) handleAnalytics(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	agg, err := a.Analytics.Get(r.Context(), owner.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analytics": toAggregateDTO(agg)})
}

func (a *API) handleDailyHours(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "week"
	}
	if !domain.ValidRangeKinds[rng] {
		a.writeError(w, r, fmt.Errorf("unknown range %q: %w", rng, service.ErrValidation))
		return
	}
	buckets := a.Insights.DailyStudyHours(r.Context(), owner.ID, domain.RangeKind(rng))
	writeJSON(w, http.StatusOK, map[string]any{"daily": buckets})
}

func (a *API) handleCompletionSplit(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	writeJSON(w, http.StatusOK, map[string]any{"split": a.Insights.TaskCompletionSplit(r.Context(), owner.ID)})
}

func (a *API) handleStreak(w http.ResponseWriter, r *http.Request, owner *domain.User) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			a.writeError(w, r, fmt.Errorf("days must be a positive integer: %w", service.ErrValidation))
			return
		}
		days = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"streak": a.Insights.StreakCalendar(r.Context(), owner.ID, days)})
}

// decodeBody decodes a JSON request body, rejecting malformed payloads as
// validation failures.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", service.ErrValidation)
	}
	return nil
}
