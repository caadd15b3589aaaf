// Package api exposes the planner over HTTP with JSON bodies.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
	"github.com/sheikh-saqib/household-payoff-planner/internal/planner"
)

type Handler struct {
	planner *planner.Planner
	logger  *zap.Logger
}

func NewHandler(p *planner.Planner, logger *zap.Logger) *Handler {
	return &Handler{planner: p, logger: logger}
}

// Routes registers every endpoint on a fresh mux wrapped in the request
// metrics middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /plans", h.createPlan)
	mux.HandleFunc("GET /plans/active", h.activePlan)
	mux.HandleFunc("GET /plans/previous", h.previousPlans)
	mux.HandleFunc("PATCH /plans/{id}", h.updatePlan)
	mux.HandleFunc("POST /plans/{id}/archive", h.archivePlan)
	mux.HandleFunc("DELETE /plans/{id}", h.deletePlan)

	mux.HandleFunc("POST /plans/{id}/goals", h.addGoal)
	mux.HandleFunc("PATCH /goals/{id}", h.updateGoal)
	mux.HandleFunc("DELETE /goals/{id}", h.removeGoal)

	mux.HandleFunc("GET /plans/{id}/schedule", h.schedule)
	mux.HandleFunc("GET /plans/{id}/progress", h.progress)
	mux.HandleFunc("POST /plans/{id}/payments", h.recordPayment)

	return h.instrument(mux)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var req planner.NewPlan
	if !h.decode(w, r, &req) {
		return
	}
	plan, err := h.planner.CreatePlan(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *Handler) activePlan(w http.ResponseWriter, r *http.Request) {
	details, err := h.planner.ActivePlan(r.Context(), r.URL.Query().Get("household_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) previousPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planner.PreviousPlans(r.Context(), r.URL.Query().Get("household_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *Handler) updatePlan(w http.ResponseWriter, r *http.Request) {
	var req planner.PlanUpdate
	if !h.decode(w, r, &req) {
		return
	}
	plan, err := h.planner.UpdatePlan(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) archivePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planner.ArchivePlan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.DeleteArchivedPlan(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addGoal(w http.ResponseWriter, r *http.Request) {
	var req planner.NewGoal
	if !h.decode(w, r, &req) {
		return
	}
	goal, err := h.planner.AddGoal(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	var req planner.GoalUpdate
	if !h.decode(w, r, &req) {
		return
	}
	goal, err := h.planner.UpdateGoal(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *Handler) removeGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.RemoveGoal(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	view, err := h.planner.Schedule(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.planner.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// paymentRequest either ticks a box (Checked) or logs an amount (Amount).
// Amount wins when both are sent.
type paymentRequest struct {
	GoalID   string           `json:"goal_id"`
	MonthKey string           `json:"month_key"`
	Checked  *bool            `json:"checked,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.GoalID == "" {
		h.writeError(w, r, fmt.Errorf("%w: goal_id", models.ErrMissingField))
		return
	}

	planID := r.PathValue("id")
	var (
		rec models.PaymentRecord
		err error
	)
	switch {
	case req.Amount != nil:
		rec, err = h.planner.RecordPartialPayment(r.Context(), planID, req.GoalID, req.MonthKey, *req.Amount)
	case req.Checked != nil:
		rec, err = h.planner.CheckPayment(r.Context(), planID, req.GoalID, req.MonthKey, *req.Checked)
	default:
		err = fmt.Errorf("%w: checked or amount", models.ErrMissingField)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrPlanNotFound),
		errors.Is(err, models.ErrGoalNotFound),
		errors.Is(err, models.ErrNoActivePlan):
		return http.StatusNotFound
	case errors.Is(err, models.ErrActivePlanExists),
		errors.Is(err, models.ErrPlanArchived),
		errors.Is(err, models.ErrPlanNotArchived):
		return http.StatusConflict
	case errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidMonth),
		errors.Is(err, models.ErrInvalidGoalType),
		errors.Is(err, models.ErrNegativePayment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
