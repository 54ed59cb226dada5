package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/railway_reservation/internal/core/services"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type TicketHandler struct {
	svc *services.TicketService
	log *logger.Logger
}

func NewTicketHandler(svc *services.TicketService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, log: log}
}

func (h *TicketHandler) PDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pdf, filename, err := h.svc.PDF(r.Context(), ps.ByName("pnr"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *TicketHandler) QR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	png, err := h.svc.QR(r.Context(), ps.ByName("pnr"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
