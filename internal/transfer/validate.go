// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package transfer

import (
	"encoding/json"
	"fmt"
)

// Validate checks a candidate recipe against the cookbook schema and returns
// every violation found, as human-readable strings. An empty result means
// the recipe is valid. Violations are collected rather than short-circuited
// so a submitter sees all problems in one pass.
func Validate(raw *RawRecipe) []string {
	var violations []string

	if _, ok := decodeString(raw.Name); !ok {
		violations = append(violations, "Missing or invalid name")
	}

	if _, ok := decodeString(raw.Category); !ok {
		violations = append(violations, "Missing or invalid category")
	}

	if n, ok := decodeNumber(raw.PrepTime); !ok || n < 0 {
		violations = append(violations, "Missing or invalid prepTime")
	}

	if n, ok := decodeNumber(raw.WaitTime); !ok || n < 0 {
		violations = append(violations, "Missing or invalid waitTime")
	}

	if n, ok := decodeNumber(raw.Servings); !ok || n < 1 {
		violations = append(violations, "Missing or invalid servings")
	}

	violations = append(violations, validateIngredients(raw.Ingredients)...)
	violations = append(violations, validateSteps(raw.Stages, raw.Instructions)...)

	violations = append(violations, validateOptionalString(raw.Difficulty, "difficulty")...)
	violations = append(violations, validateOptionalString(raw.MainIngredient, "mainIngredient")...)
	violations = append(violations, validateOptionalStrings(raw.Tags, "tags")...)
	violations = append(violations, validateOptionalStrings(raw.Comments, "comments")...)

	// Not yet part of the persisted schema but type-checked so submitters
	// get errors early.
	violations = append(violations, validateOptionalString(raw.Description, "description")...)
	violations = append(violations, validateOptionalString(raw.SourceURL, "sourceUrl")...)

	return violations
}

type rawIngredient struct {
	Item   json.RawMessage `json:"item"`
	Amount json.RawMessage `json:"amount"`
	Unit   json.RawMessage `json:"unit"`
}

func validateIngredients(raw json.RawMessage) []string {
	if !present(raw) {
		return []string{"Missing or invalid ingredients array"}
	}
	var ingredients []rawIngredient
	if err := json.Unmarshal(raw, &ingredients); err != nil || len(ingredients) == 0 {
		return []string{"Missing or invalid ingredients array"}
	}

	var violations []string
	for i, ingredient := range ingredients {
		if _, ok := decodeString(ingredient.Item); !ok {
			violations = append(violations, fmt.Sprintf("Ingredient %d: missing or invalid item", i))
		}
		if present(ingredient.Amount) {
			var s string
			if err := json.Unmarshal(ingredient.Amount, &s); err != nil {
				violations = append(violations, fmt.Sprintf("Ingredient %d: amount must be string", i))
			}
		}
		if present(ingredient.Unit) {
			var s string
			if err := json.Unmarshal(ingredient.Unit, &s); err != nil {
				violations = append(violations, fmt.Sprintf("Ingredient %d: unit must be string", i))
			}
		}
	}
	return violations
}

type rawStage struct {
	Title        json.RawMessage `json:"title"`
	Instructions json.RawMessage `json:"instructions"`
}

// validateSteps checks the mutual exclusivity of stages and instructions and
// the structure of whichever is supplied.
func validateSteps(rawStages json.RawMessage, rawInstructions json.RawMessage) []string {
	stageElems, hasStages := decodeArray(rawStages)
	instructionElems, hasInstructions := decodeArray(rawInstructions)

	if !hasStages && !hasInstructions {
		return []string{"Must have either stages or instructions"}
	}
	if hasStages && hasInstructions {
		return []string{"Cannot have both stages and instructions - choose one"}
	}

	var violations []string
	if hasStages {
		if len(stageElems) == 0 {
			violations = append(violations, "Stages array must not be empty")
		}
		for i, elem := range stageElems {
			var stage rawStage
			if err := json.Unmarshal(elem, &stage); err != nil {
				violations = append(violations,
					fmt.Sprintf("Stage %d: missing or invalid title", i),
					fmt.Sprintf("Stage %d: missing or invalid instructions array", i))
				continue
			}
			if _, ok := decodeString(stage.Title); !ok {
				violations = append(violations, fmt.Sprintf("Stage %d: missing or invalid title", i))
			}
			if steps, ok := decodeStrings(stage.Instructions); !ok || len(steps) == 0 {
				violations = append(violations, fmt.Sprintf("Stage %d: missing or invalid instructions array", i))
			}
		}
	}
	if hasInstructions {
		if len(instructionElems) == 0 {
			violations = append(violations, "Instructions array must not be empty")
		} else if _, ok := decodeStrings(rawInstructions); !ok {
			violations = append(violations, "All instructions must be strings")
		}
	}
	return violations
}

func validateOptionalString(raw json.RawMessage, name string) []string {
	if !present(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []string{fmt.Sprintf("Invalid %s: must be string", name)}
	}
	return nil
}

func validateOptionalStrings(raw json.RawMessage, name string) []string {
	if !present(raw) {
		return nil
	}
	if _, ok := decodeStrings(raw); !ok {
		return []string{fmt.Sprintf("Invalid %s: must be array of strings", name)}
	}
	return nil
}
