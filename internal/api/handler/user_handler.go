package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/Priiiyaa/Gratify/internal/api/middleware"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc      *usecase.UserUseCase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewUserHandler(uc *usecase.UserUseCase, mm *metrics.MetricsManager, logger *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, metrics: mm, logger: logger}
}

type userRequest struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phoneNumber"`
	Address      addressDTO `json:"address"`
	Role         string     `json:"role"`
	Category     string     `json:"category"`
	ProfileImage string     `json:"profileImage"`
	Rating       string     `json:"rating"`
}

func (req *userRequest) toProfileInput() usecase.UserProfileInput {
	return usecase.UserProfileInput{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      toAddressEntity(req.Address),
		Role:         req.Role,
		Category:     req.Category,
		ProfileImage: req.ProfileImage,
		Rating:       req.Rating,
	}
}

// Create registers a profile on first login. A repeat login with a known uid
// returns the existing record with 200 instead of a conflict.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}

	uid := req.UID
	if uid == "" {
		if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
			uid = identity.UID
		}
	}

	user, created, err := h.uc.CreateOrGetUser(r.Context(), uid, req.toProfileInput())
	if err != nil {
		handleError(w, h.logger, h.metrics, "user.create", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, toUserDTO(user))
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized: No token provided")
		return
	}

	user, err := h.uc.GetByUID(r.Context(), identity.UID)
	if err != nil {
		handleError(w, h.logger, h.metrics, "user.me", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) GetByUID(w http.ResponseWriter, r *http.Request) {
	user, err := h.uc.GetByUID(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		handleError(w, h.logger, h.metrics, "user.get", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.uc.ListUsers(r.Context())
	if err != nil {
		handleError(w, h.logger, h.metrics, "user.list", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserDTOs(users))
}

// Update is a full-profile upsert keyed by uid, creating the record when the
// uid has never been seen.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.uc.UpsertProfile(r.Context(), chi.URLParam(r, "uid"), req.toProfileInput())
	if err != nil {
		handleError(w, h.logger, h.metrics, "user.update", err)
		return
	}
	respondJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, h.logger, h.metrics, "user.delete", err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
