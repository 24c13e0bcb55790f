package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"estate/src/schemas"
	"estate/src/utils"
)

// PostUpdate applies one writeback action.
func (h *Handler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req schemas.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	res, err := h.Controller.ApplyUpdate(ctx, &req)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, res, http.StatusOK)
}
