// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipetransfer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// pushEnvelope is the JSON body of a Cloud Pub/Sub push delivery. Data is
// base64 in the wire format, decoded by encoding/json.
type pushEnvelope struct {
	Message      pushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

type pushMessage struct {
	Data      []byte `json:"data"`
	MessageID string `json:"messageId"`
}

// NewPushHandler returns an http.Handler for Pub/Sub push deliveries of
// recipe transfer messages. Any pipeline failure results in a non-2xx
// response so the subscription redelivers.
func NewPushHandler(h *Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading request body", http.StatusInternalServerError)
			return
		}

		var envelope pushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			slog.ErrorContext(ctx, "recipetransfer: invalid push envelope", "error", err)
			http.Error(w, "invalid push envelope", http.StatusBadRequest)
			return
		}
		if len(envelope.Message.Data) == 0 {
			slog.ErrorContext(ctx, "recipetransfer: no message data received")
			http.Error(w, "no message data received", http.StatusBadRequest)
			return
		}

		res, err := h.ProcessMessage(ctx, envelope.Message.MessageID, envelope.Message.Data)
		if err != nil {
			slog.ErrorContext(ctx, "recipetransfer: recipe transfer failed",
				"messageId", envelope.Message.MessageID, "error", err)
			http.Error(w, "recipe transfer failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			slog.ErrorContext(ctx, "recipetransfer: writing push response", "error", err)
		}
	})
}
