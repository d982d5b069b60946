package handler

import (
	"net/http"

	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

type LoginHandler struct {
	uc      *usecase.UserUseCase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewLoginHandler(uc *usecase.UserUseCase, mm *metrics.MetricsManager, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{uc: uc, metrics: mm, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the legacy email lookup path. Credentials are checked by the
// external identity provider, so the password field is accepted but unused.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.uc.LoginByEmail(r.Context(), req.Email)
	if err != nil {
		handleError(w, h.logger, h.metrics, "login", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"userId":  user.UID,
	})
}
