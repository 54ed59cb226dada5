package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/railway_reservation/internal/core/services"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

// AccountHandler serves signup, login and the caller's profile.
type AccountHandler struct {
	svc *services.AccountService
	log *logger.Logger
}

func NewAccountHandler(svc *services.AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: log}
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp, err := h.svc.Profile(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), userIDFrom(r), req); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *AccountHandler) AddPassenger(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.PassengerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	passenger, err := h.svc.AddPassenger(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, passenger)
}

func (h *AccountHandler) DeletePassenger(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.DeletePassenger(r.Context(), userIDFrom(r), ps.ByName("uid")); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.svc.DeleteAccount(r.Context(), userIDFrom(r)); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
