package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/railway_reservation/internal/core/services"
	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type TrainHandler struct {
	svc *services.TrainService
	log *logger.Logger
}

func NewTrainHandler(svc *services.TrainService, log *logger.Logger) *TrainHandler {
	return &TrainHandler{svc: svc, log: log}
}

func (h *TrainHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	trains, err := h.svc.Search(r.Context(), services.SearchTrainsRequest{
		Source:      q.Get("source"),
		Destination: q.Get("destination"),
		TimeFilter:  q.Get("time_filter"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, trains)
}

func (h *TrainHandler) GetTrain(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperror.InvalidInput("invalid train id"))
		return
	}

	train, err := h.svc.GetTrain(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, train)
}

func (h *TrainHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, h.log, apperror.InvalidInput("invalid train id"))
		return
	}

	resp, err := h.svc.Availability(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
