// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package transfer implements the recipe-transfer ingestion pipeline:
// validation of externally-submitted recipes, projection into the persisted
// cookbook schema, and best-effort ingestion of candidate images.
package transfer

import "encoding/json"

// TypeRecipeTransferRequested is the type of a recipe transfer request
// message.
const TypeRecipeTransferRequested = "recipe-transfer-requested"

// Request is an inbound request to transfer an externally-authored recipe
// into the cookbook. It exists only for the duration of one pipeline
// invocation and is never persisted as-is.
type Request struct {
	// Type identifies the message, always TypeRecipeTransferRequested.
	Type string `json:"type"`

	// TransferID is a stable identifier for this transfer, used to
	// deduplicate redeliveries. When empty, the message ID is used.
	TransferID string `json:"transferId"`

	// RecipeData is the untrusted candidate recipe.
	RecipeData *RawRecipe `json:"recipeData"`

	// Metadata describes the submitting user and time.
	Metadata *Metadata `json:"metadata"`

	// Images are candidate images for the recipe.
	Images []ImageRef `json:"images"`
}

// Metadata describes the provenance of a transfer.
type Metadata struct {
	// UserID is the ID of the submitting user in the source system.
	UserID string `json:"userId"`

	// UserEmail is the email of the submitting user.
	UserEmail string `json:"userEmail"`

	// Timestamp is the submission time in the source system.
	Timestamp string `json:"timestamp"`
}

// ImageRef is a reference to a candidate image for a transferred recipe.
type ImageRef struct {
	// Filename is the name of the image file, may be empty.
	Filename string `json:"filename"`

	// DownloadURL is a signed URL the image bytes can be fetched from.
	DownloadURL string `json:"downloadUrl"`

	// ContentType is the MIME type of the image, may be empty.
	ContentType string `json:"contentType"`
}

// RawRecipe is an untrusted candidate recipe. Each field is kept as raw JSON
// so the validator can report every violation in one pass instead of
// stopping at the first field that fails to decode.
type RawRecipe struct {
	Name           json.RawMessage `json:"name"`
	Category       json.RawMessage `json:"category"`
	PrepTime       json.RawMessage `json:"prepTime"`
	WaitTime       json.RawMessage `json:"waitTime"`
	Servings       json.RawMessage `json:"servings"`
	Ingredients    json.RawMessage `json:"ingredients"`
	Stages         json.RawMessage `json:"stages"`
	Instructions   json.RawMessage `json:"instructions"`
	Difficulty     json.RawMessage `json:"difficulty"`
	MainIngredient json.RawMessage `json:"mainIngredient"`
	Tags           json.RawMessage `json:"tags"`
	Comments       json.RawMessage `json:"comments"`
	Description    json.RawMessage `json:"description"`
	SourceURL      json.RawMessage `json:"sourceUrl"`
}

// present reports whether a raw field was supplied with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// decodeString decodes a raw field as a non-empty string.
func decodeString(raw json.RawMessage) (string, bool) {
	if !present(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// decodeNumber decodes a raw field as a number.
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if !present(raw) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// decodeArray decodes a raw field as a JSON array of raw elements.
func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if !present(raw) {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// decodeStrings decodes a raw field as a JSON array of strings.
func decodeStrings(raw json.RawMessage) ([]string, bool) {
	if !present(raw) {
		return nil, false
	}
	var elems []string
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	return elems, true
}
