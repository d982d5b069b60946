package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

type UserStatsHandler struct {
	uc      *usecase.UserStatsUseCase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewUserStatsHandler(uc *usecase.UserStatsUseCase, mm *metrics.MetricsManager, logger *zap.Logger) *UserStatsHandler {
	return &UserStatsHandler{uc: uc, metrics: mm, logger: logger}
}

type userStatsRequest struct {
	User           string     `json:"user"`
	TotalDonations int        `json:"totalDonations"`
	TotalClaims    int        `json:"totalClaims"`
	Badges         []badgeDTO `json:"badges"`
}

func (h *UserStatsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userStatsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stats, err := h.uc.CreateUserStats(r.Context(), req.User, req.TotalDonations, req.TotalClaims, toBadgeEntities(req.Badges))
	if err != nil {
		handleError(w, h.logger, h.metrics, "stats.create", err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserStatsDTO(stats))
}

func (h *UserStatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.GetUserStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, h.logger, h.metrics, "stats.get", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserStatsDTO(stats))
}

func (h *UserStatsHandler) List(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.ListUserStats(r.Context())
	if err != nil {
		handleError(w, h.logger, h.metrics, "stats.list", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserStatsDTOs(stats))
}

func (h *UserStatsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userStatsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stats, err := h.uc.UpdateUserStats(r.Context(), chi.URLParam(r, "id"), req.TotalDonations, req.TotalClaims, toBadgeEntities(req.Badges))
	if err != nil {
		handleError(w, h.logger, h.metrics, "stats.update", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserStatsDTO(stats))
}

func (h *UserStatsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteUserStats(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, h.logger, h.metrics, "stats.delete", err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Leaderboard returns contribution standings ordered by points, highest first.
func (h *UserStatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.uc.Leaderboard(r.Context())
	if err != nil {
		handleError(w, h.logger, h.metrics, "stats.leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
