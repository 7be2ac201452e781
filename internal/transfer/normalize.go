// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package transfer

import (
	"encoding/json"
	"time"

	"github.com/curioswitch/cookbook/transfer/server/internal/cookbookdb"
)

// NewRecipe projects a validated candidate recipe into the persisted recipe
// shape, before any images are ingested. The recipe starts unapproved with
// empty image lists; description, sourceUrl, and transfer provenance are not
// part of the persisted schema and are dropped.
//
// The input must have passed Validate.
func NewRecipe(raw *RawRecipe, now time.Time) *cookbookdb.Recipe {
	recipe := &cookbookdb.Recipe{
		Name:                  asString(raw.Name),
		Category:              asString(raw.Category),
		PrepTime:              asInt(raw.PrepTime),
		WaitTime:              asInt(raw.WaitTime),
		Servings:              asInt(raw.Servings),
		Difficulty:            asString(raw.Difficulty),
		MainIngredient:        asString(raw.MainIngredient),
		Tags:                  []string{},
		Comments:              []string{},
		Approved:              false,
		AllowImageSuggestions: true,
		Images:                []cookbookdb.RecipeImage{},
		PendingImages:         []cookbookdb.RecipeImage{},
		CreationTime:          now,
	}

	_ = json.Unmarshal(raw.Ingredients, &recipe.Ingredients)

	if present(raw.Stages) {
		_ = json.Unmarshal(raw.Stages, &recipe.Stages)
	} else {
		_ = json.Unmarshal(raw.Instructions, &recipe.Instructions)
	}

	if tags, ok := decodeStrings(raw.Tags); ok {
		recipe.Tags = tags
	}
	if comments, ok := decodeStrings(raw.Comments); ok {
		recipe.Comments = comments
	}

	return recipe
}

func asString(raw json.RawMessage) string {
	s, _ := decodeString(raw)
	return s
}

func asInt(raw json.RawMessage) int {
	n, _ := decodeNumber(raw)
	return int(n)
}
