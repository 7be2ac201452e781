// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package cookbookdb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const recipesCollection = "recipes"

// NewRecipeStore returns a RecipeStore backed by the given Firestore client.
func NewRecipeStore(client *firestore.Client) *RecipeStore {
	return &RecipeStore{
		client: client,
	}
}

// RecipeStore persists recipes to the recipes collection.
type RecipeStore struct {
	client *firestore.Client
}

// CreateTransfer creates a recipe document for a transfer, keyed on the
// transfer's stable identifier so redeliveries of the same transfer converge
// on a single document. Returns the ID of the recipe document.
func (s *RecipeStore) CreateTransfer(ctx context.Context, transferID string, recipe *Recipe) (string, error) {
	doc := s.client.Collection(recipesCollection).Doc("transfer-" + transferID)
	if _, err := doc.Create(ctx, recipe); err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return "", fmt.Errorf("cookbookdb: creating recipe: %w", err)
		}
		// A previous delivery of this transfer already persisted the
		// recipe. Keep the first write and let the caller reconcile
		// images against the existing document.
	}
	return doc.ID, nil
}

// AttachImages replaces the images of the recipe document with the given
// list.
func (s *RecipeStore) AttachImages(ctx context.Context, recipeID string, images []RecipeImage) error {
	doc := s.client.Collection(recipesCollection).Doc(recipeID)
	if _, err := doc.Update(ctx, []firestore.Update{
		{Path: "images", Value: images},
	}); err != nil {
		return fmt.Errorf("cookbookdb: updating recipe images: %w", err)
	}
	return nil
}
