package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/Priiiyaa/Gratify/internal/entity"
	"github.com/Priiiyaa/Gratify/internal/platform/metrics"
	"github.com/Priiiyaa/Gratify/internal/port/repository"
	"github.com/Priiiyaa/Gratify/internal/ranking"
	"github.com/Priiiyaa/Gratify/internal/usecase"
	"go.uber.org/zap"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type FoodHandler struct {
	uc      *usecase.FoodUseCase
	metrics *metrics.MetricsManager
	logger  *zap.Logger
}

func NewFoodHandler(uc *usecase.FoodUseCase, mm *metrics.MetricsManager, logger *zap.Logger) *FoodHandler {
	return &FoodHandler{uc: uc, metrics: mm, logger: logger}
}

type createFoodRequest struct {
	User          string       `json:"user"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Quantity      string       `json:"quantity"`
	Category      string       `json:"category"`
	Location      *geoPointDTO `json:"location"`
	ImageURL      string       `json:"imageURL"`
	IsUrgent      bool         `json:"isUrgent"`
	DietryRestric string       `json:"dietryRestric"`
	Price         string       `json:"price"`
	Unit          string       `json:"unit"`
	ExpiresAt     time.Time    `json:"expiresAt"`
}

type updateFoodRequest struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Quantity      *string      `json:"quantity"`
	Category      *string      `json:"category"`
	Location      *geoPointDTO `json:"location"`
	ImageURL      *string      `json:"imageURL"`
	IsUrgent      *bool        `json:"isUrgent"`
	DietryRestric *string      `json:"dietryRestric"`
	Price         *string      `json:"price"`
	Unit          *string      `json:"unit"`
	ExpiresAt     *time.Time   `json:"expiresAt"`
}

type commentRequest struct {
	User string `json:"user"`
	Text string `json:"text"`
}

func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFoodRequest
	if !decodeBody(w, r, &req) {
		return
	}

	food, err := h.uc.CreateFood(r.Context(), usecase.CreateFoodInput{
		UserID:        req.User,
		Title:         req.Title,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Category:      req.Category,
		Location:      toGeoPointEntity(req.Location),
		ImageURL:      req.ImageURL,
		IsUrgent:      req.IsUrgent,
		DietryRestric: req.DietryRestric,
		Price:         req.Price,
		Unit:          req.Unit,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.create", err)
		return
	}
	respondJSON(w, http.StatusCreated, toFoodDTO(food))
}

func (h *FoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	food, err := h.uc.GetFood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.get", err)
		return
	}
	respondJSON(w, http.StatusOK, toFoodDTO(food))
}

func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.uc.ListFoods(r.Context())
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.list", err)
		return
	}
	respondJSON(w, http.StatusOK, toFoodDTOs(foods))
}

// ExpiringAfterToday lists only listings whose expiry is still ahead of now.
// An empty result is a 404, matching the route's original contract.
func (h *FoodHandler) ExpiringAfterToday(w http.ResponseWriter, r *http.Request) {
	foods, err := h.uc.ListFoodsExpiringAfter(r.Context(), time.Now())
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.expiring", err)
		return
	}
	respondJSON(w, http.StatusOK, toFoodDTOs(foods))
}

// Ranked runs the browse pipeline server-side. The viewer position comes from
// lat/lng query params; when either is absent or malformed every distance is
// reported as null and distance ordering places all listings equal.
func (h *FoodHandler) Ranked(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var viewer *entity.GeoPoint
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr == nil && lngErr == nil {
		viewer = &entity.GeoPoint{Lat: lat, Lng: lng}
	}

	params := ranking.Params{
		SortBy:             ranking.SortKey(q.Get("sortBy")),
		DietaryRestriction: q.Get("dietaryRestriction"),
		Category:           q.Get("category"),
		Price:              q.Get("price"),
	}

	items, err := h.uc.RankedFoods(r.Context(), viewer, params)
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.ranked", err)
		return
	}
	respondJSON(w, http.StatusOK, toRankedFoodDTOs(items))
}

func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateFoodRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upd := repository.FoodUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Category:      req.Category,
		Location:      toGeoPointEntity(req.Location),
		ImageURL:      req.ImageURL,
		IsUrgent:      req.IsUrgent,
		DietryRestric: req.DietryRestric,
		Price:         req.Price,
		Unit:          req.Unit,
		ExpiresAt:     req.ExpiresAt,
	}
	food, err := h.uc.UpdateFood(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.update", err)
		return
	}
	respondJSON(w, http.StatusOK, toFoodDTO(food))
}

func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteFood(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, h.logger, h.metrics, "food.delete", err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *FoodHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	food, err := h.uc.AddComment(r.Context(), chi.URLParam(r, "id"), req.User, req.Text)
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.comment.add", err)
		return
	}
	respondJSON(w, http.StatusCreated, toFoodDTO(food))
}

func (h *FoodHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	food, err := h.uc.RemoveComment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentId"))
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.comment.remove", err)
		return
	}
	respondJSON(w, http.StatusOK, toFoodDTO(food))
}

// UploadPhoto accepts a multipart "file" part, stores it in object storage and
// points the listing's imageURL at the stored object.
func (h *FoodHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	url, err := h.uc.UploadPhoto(r.Context(), chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		handleError(w, h.logger, h.metrics, "food.photo", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"imageURL": url})
}
