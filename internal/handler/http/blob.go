package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/utils"
	"github.com/zerovault/zerovault/models"
)

func (h *Handler) upsertBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.upsertBlob").Msg("no account identity in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.UpsertBlobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.upsertBlob").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	name := chi.URLParam(r, "name")
	saved, created, err := h.services.BlobService.UpsertBlob(ctx, accountID, name, req.Envelope, req.Version)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertBlob").Str("name", name).Msg("blob upsert failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	utils.WriteJSON(w, models.UpsertBlobResponse{
		Name:      saved.Name,
		Version:   saved.Version,
		UpdatedAt: saved.UpdatedAt,
	}, status)
}

func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.getBlob").Msg("no account identity in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "name")
	blob, err := h.services.BlobService.GetBlob(ctx, accountID, name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBlob").Str("name", name).Msg("blob lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, blob, http.StatusOK)
}

func (h *Handler) listBlobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.listBlobs").Msg("no account identity in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		log.Err(err).Str("func", "*Handler.listBlobs").Msg("bad limit query parameter")
		http.Error(w, "bad `limit` query parameter", http.StatusBadRequest)
		return
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		log.Err(err).Str("func", "*Handler.listBlobs").Msg("bad offset query parameter")
		http.Error(w, "bad `offset` query parameter", http.StatusBadRequest)
		return
	}

	page, err := h.services.BlobService.ListBlobs(ctx, accountID, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listBlobs").Msg("blob listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) deleteBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteBlob").Msg("no account identity in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.services.BlobService.DeleteBlob(ctx, accountID, name); err != nil {
		log.Err(err).Str("func", "*Handler.deleteBlob").Str("name", name).Msg("blob deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional non-negative integer query parameter; an absent
// parameter yields zero.
func queryInt(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
