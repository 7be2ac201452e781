// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package cookbookdb

import "time"

// ImageAccess is the visibility of a stored recipe image.
type ImageAccess string

const (
	// ImageAccessPublic is an image readable by anyone.
	ImageAccessPublic ImageAccess = "public"
)

// Ingredient is a single ingredient of a recipe.
type Ingredient struct {
	// Item is the name of the ingredient.
	Item string `firestore:"item" json:"item"`

	// Amount is the quantity of the ingredient as free-form text.
	Amount string `firestore:"amount,omitempty" json:"amount,omitempty"`

	// Unit is the measurement unit for Amount.
	Unit string `firestore:"unit,omitempty" json:"unit,omitempty"`
}

// Stage is a titled group of instructions in a multi-stage recipe.
type Stage struct {
	// Title is the title of the stage.
	Title string `firestore:"title" json:"title"`

	// Instructions are the instructions of the stage, in order.
	Instructions []string `firestore:"instructions" json:"instructions"`
}

// RecipeImage is an image attached to a recipe.
type RecipeImage struct {
	// ID is the unique identifier of the image.
	ID string `firestore:"id"`

	// FileName is the name of the image file within the recipe's folders.
	FileName string `firestore:"fileName"`

	// Full is the storage path of the full-size image.
	Full string `firestore:"full"`

	// Compressed is the storage path of the compressed image.
	Compressed string `firestore:"compressed"`

	// IsPrimary indicates the image shown for the recipe by default.
	// At most one image of a recipe is primary.
	IsPrimary bool `firestore:"isPrimary"`

	// Access is the visibility of the image.
	Access ImageAccess `firestore:"access"`

	// UploadedBy is the ID of the user that uploaded the image.
	UploadedBy string `firestore:"uploadedBy"`

	// UploadTimestamp is the time the image was uploaded.
	UploadTimestamp time.Time `firestore:"uploadTimestamp"`
}

// Recipe represents a recipe stored in Firestore.
//
// Exactly one of Stages or Instructions is set, never both.
type Recipe struct {
	// Name is the name of the recipe.
	Name string `firestore:"name"`

	// Category is the cookbook category of the recipe, e.g. "soups-stews".
	Category string `firestore:"category"`

	// PrepTime is the active preparation time in minutes.
	PrepTime int `firestore:"prepTime"`

	// WaitTime is the passive wait time in minutes.
	WaitTime int `firestore:"waitTime"`

	// Servings is the number of servings the recipe yields.
	Servings int `firestore:"servings"`

	// Ingredients are the ingredients of the recipe, in order.
	Ingredients []Ingredient `firestore:"ingredients"`

	// Stages are the titled instruction stages of a multi-stage recipe.
	Stages []Stage `firestore:"stages,omitempty"`

	// Instructions are the instructions of a single-stage recipe.
	Instructions []string `firestore:"instructions,omitempty"`

	// Difficulty is the difficulty of the recipe as free-form text.
	Difficulty string `firestore:"difficulty,omitempty"`

	// MainIngredient is the featured ingredient of the recipe.
	MainIngredient string `firestore:"mainIngredient,omitempty"`

	// Tags are free-form tags for filtering.
	Tags []string `firestore:"tags"`

	// Comments are reader comments on the recipe.
	Comments []string `firestore:"comments"`

	// Approved indicates the recipe passed human moderation. Transfers
	// always start unapproved.
	Approved bool `firestore:"approved"`

	// AllowImageSuggestions indicates users may propose images for the
	// recipe.
	AllowImageSuggestions bool `firestore:"allowImageSuggestions"`

	// Images are the images attached to the recipe.
	Images []RecipeImage `firestore:"images"`

	// PendingImages are proposed images awaiting moderation.
	PendingImages []RecipeImage `firestore:"pendingImages"`

	// CreationTime is the time the recipe was created.
	CreationTime time.Time `firestore:"creationTime"`
}
