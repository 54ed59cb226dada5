package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/railway_reservation/internal/core/services"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type BookingHandler struct {
	svc *services.BookingService
	log *logger.Logger
}

func NewBookingHandler(svc *services.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	resp, err := h.svc.CreateBooking(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, err := h.svc.ListUserBookings(r.Context(), userIDFrom(r), pageParam(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *BookingHandler) GetByPNR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resp, err := h.svc.GetByPNR(r.Context(), ps.ByName("pnr"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) ReturnTrain(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	train, err := h.svc.FindReturnTrain(r.Context(), ps.ByName("pnr"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, train)
}
