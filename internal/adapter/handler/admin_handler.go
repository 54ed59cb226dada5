package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/services"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type DashboardResponse struct {
	*services.BookingPage
	Trains []domain.Train `json:"trains"`
}

type AdminHandler struct {
	bookings *services.BookingService
	trains   *services.TrainService
	log      *logger.Logger
}

func NewAdminHandler(bookings *services.BookingService, trains *services.TrainService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{bookings: bookings, trains: trains, log: log}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, err := h.bookings.ListAll(r.Context(), pageParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	trains, err := h.trains.ListTrains(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{BookingPage: page, Trains: trains})
}

func (h *AdminHandler) AddTrain(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.CreateTrainRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	train, err := h.trains.AddTrain(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, train)
}
