// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package recipetransfer handles recipe-transfer-requested messages: it
// validates the submitted recipe, persists it unapproved, and ingests its
// candidate images best-effort.
package recipetransfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/curioswitch/cookbook/transfer/server/internal/cookbookdb"
	"github.com/curioswitch/cookbook/transfer/server/internal/transfer"
)

var (
	errInvalidMessageType = errors.New("recipetransfer: invalid message type")
	errMissingData        = errors.New("recipetransfer: missing recipeData or metadata")
)

// RecipeStore persists transferred recipes.
type RecipeStore interface {
	// CreateTransfer creates the recipe document for a transfer,
	// converging redeliveries onto one document, and returns its ID.
	CreateTransfer(ctx context.Context, transferID string, recipe *cookbookdb.Recipe) (string, error)

	// AttachImages replaces the recipe document's image list.
	AttachImages(ctx context.Context, recipeID string, images []cookbookdb.RecipeImage) error
}

// ImageIngestor stores candidate images for a recipe.
type ImageIngestor interface {
	Ingest(ctx context.Context, recipeID string, category string, uploaderID string, images []transfer.ImageRef) ([]cookbookdb.RecipeImage, error)
}

// Result is the outcome of a successfully processed transfer.
type Result struct {
	Success     bool      `json:"success"`
	MessageID   string    `json:"messageId"`
	RecipeID    string    `json:"recipeId"`
	RecipeName  string    `json:"recipeName"`
	ProcessedAt time.Time `json:"processedAt"`
}

// NewHandler returns a Handler persisting through store and ingesting
// images through images.
func NewHandler(store RecipeStore, images ImageIngestor) *Handler {
	return &Handler{
		store:  store,
		images: images,
		now:    time.Now,
	}
}

// Handler orchestrates one recipe transfer per inbound message.
type Handler struct {
	store  RecipeStore
	images ImageIngestor

	now func() time.Time
}

// ProcessMessage runs the transfer pipeline for one message body. A returned
// error means no recipe was persisted and the message should be redelivered;
// image failures after persistence are absorbed, the recipe is kept with
// whatever images succeeded.
func (h *Handler) ProcessMessage(ctx context.Context, messageID string, body []byte) (*Result, error) {
	var req transfer.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("recipetransfer: parsing message JSON: %w", err)
	}

	if req.Type != transfer.TypeRecipeTransferRequested {
		return nil, errInvalidMessageType
	}
	if req.RecipeData == nil || req.Metadata == nil {
		return nil, errMissingData
	}

	if violations := transfer.Validate(req.RecipeData); len(violations) > 0 {
		return nil, fmt.Errorf("recipetransfer: recipe validation failed: %s", strings.Join(violations, ", "))
	}

	recipe := transfer.NewRecipe(req.RecipeData, h.now())

	transferID := req.TransferID
	if transferID == "" {
		// Message IDs are stable across redeliveries of one published
		// message, so they still converge duplicates.
		transferID = messageID
	}

	recipeID, err := h.store.CreateTransfer(ctx, transferID, recipe)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "recipetransfer: recipe stored",
		"recipeId", recipeID, "name", recipe.Name, "user", req.Metadata.UserEmail)

	if len(req.Images) > 0 {
		processed, err := h.images.Ingest(ctx, recipeID, recipe.Category, req.Metadata.UserID, req.Images)
		if err != nil {
			// The recipe transfer succeeds even if images fail.
			slog.ErrorContext(ctx, "recipetransfer: image ingestion aborted", "recipeId", recipeID, "error", err)
		}
		if len(processed) > 0 {
			if err := h.store.AttachImages(ctx, recipeID, processed); err != nil {
				slog.ErrorContext(ctx, "recipetransfer: failed to attach images", "recipeId", recipeID, "error", err)
			} else {
				slog.InfoContext(ctx, "recipetransfer: attached images", "recipeId", recipeID, "count", len(processed))
			}
		}
	}

	return &Result{
		Success:     true,
		MessageID:   messageID,
		RecipeID:    recipeID,
		RecipeName:  recipe.Name,
		ProcessedAt: h.now(),
	}, nil
}
