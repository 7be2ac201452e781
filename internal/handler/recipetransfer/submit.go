// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipetransfer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// NewSubmitHandler returns an http.Handler accepting a transfer request
// directly as JSON, for authenticated submitters that do not go through the
// queue. The body is the same shape as a queue message payload; a generated
// message ID is used when the request carries no transferId.
func NewSubmitHandler(h *Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading request body", http.StatusInternalServerError)
			return
		}

		res, err := h.ProcessMessage(ctx, uuid.NewString(), body)
		if err != nil {
			slog.ErrorContext(ctx, "recipetransfer: direct transfer failed", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			slog.ErrorContext(ctx, "recipetransfer: writing submit response", "error", err)
		}
	})
}
