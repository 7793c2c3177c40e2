package http

import (
	"encoding/json"
	"net/http"

	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/utils"
	"github.com/zerovault/zerovault/models"
)

// params discloses the KDF descriptor of an identifier for the two-step
// verify flow. Absent identifiers map to 401, the same status the verify
// step would return.
func (h *Handler) params(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ParamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.params").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	kdfParams, err := h.services.AuthService.Params(ctx, req.Identifier)
	if err != nil {
		log.Err(err).Str("func", "*Handler.params").Msg("kdf params lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, kdfParams, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("account registration failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Debug().Int64("accountID", account.AccountID).Msg("account registered")

	utils.WriteJSON(w, models.RegisterResponse{CreatedAt: account.CreatedAt}, http.StatusCreated)
}

// verify exchanges a re-derived verifier for a bearer token and the wrapped
// account key. Every failure mode of the verification itself is a bare 401.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verify").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Verify(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.verify").Msg("verification failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) rotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.rotate").Msg("no account identity in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.RotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.rotate").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.Rotate(ctx, accountID, req); err != nil {
		log.Err(err).Str("func", "*Handler.rotate").Msg("credential rotation failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
