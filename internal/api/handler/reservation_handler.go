package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	uc      *usecase.ReservationUseCase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewReservationHandler(uc *usecase.ReservationUseCase, mm *metrics.MetricsManager, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{uc: uc, metrics: mm, logger: logger}
}

type reservationRequest struct {
	Food     string    `json:"food"`
	User     string    `json:"user"`
	Location string    `json:"location"`
	DateTime time.Time `json:"dateTime"`
	Quantity int       `json:"quantity"`
	Status   string    `json:"status"`
}

func (req *reservationRequest) toInput() usecase.ReservationInput {
	return usecase.ReservationInput{
		FoodID:   req.Food,
		UserID:   req.User,
		Location: req.Location,
		DateTime: req.DateTime,
		Quantity: req.Quantity,
		Status:   entity.ReservationStatus(req.Status),
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation, err := h.uc.CreateReservation(r.Context(), req.toInput())
	if err != nil {
		handleError(w, h.logger, h.metrics, "reservation.create", err)
		return
	}
	respondJSON(w, http.StatusCreated, toReservationDTO(reservation))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.uc.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, h.logger, h.metrics, "reservation.get", err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTO(reservation))
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.uc.ListReservations(r.Context())
	if err != nil {
		handleError(w, h.logger, h.metrics, "reservation.list", err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTOs(reservations))
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation, err := h.uc.UpdateReservation(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleError(w, h.logger, h.metrics, "reservation.update", err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTO(reservation))
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteReservation(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, h.logger, h.metrics, "reservation.delete", err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
