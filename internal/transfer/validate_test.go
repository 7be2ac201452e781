// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package transfer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRaw(t *testing.T, recipeJSON string) *RawRecipe {
	t.Helper()
	var raw RawRecipe
	require.NoError(t, json.Unmarshal([]byte(recipeJSON), &raw))
	return &raw
}

const validRecipeJSON = `{
	"name": "Soup",
	"category": "soups-stews",
	"prepTime": 10,
	"waitTime": 20,
	"servings": 4,
	"ingredients": [{"item": "carrot"}],
	"instructions": ["Boil"]
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		recipe string
		want   []string
	}{
		{
			name:   "valid with instructions",
			recipe: validRecipeJSON,
			want:   nil,
		},
		{
			name: "valid with stages",
			recipe: `{
				"name": "Lasagna",
				"category": "main-dishes",
				"prepTime": 45,
				"waitTime": 30,
				"servings": 6,
				"ingredients": [{"item": "pasta", "amount": "500", "unit": "g"}],
				"stages": [{"title": "Sauce", "instructions": ["Simmer the sauce"]}],
				"difficulty": "medium",
				"mainIngredient": "pasta",
				"tags": ["italian"],
				"comments": ["family favorite"],
				"description": "A classic",
				"sourceUrl": "https://example.com/lasagna"
			}`,
			want: nil,
		},
		{
			name: "missing name",
			recipe: `{
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"instructions": ["Boil"]
			}`,
			want: []string{"Missing or invalid name"},
		},
		{
			name: "name wrong type",
			recipe: `{
				"name": 5,
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"instructions": ["Boil"]
			}`,
			want: []string{"Missing or invalid name"},
		},
		{
			name: "negative prep time",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": -1,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"instructions": ["Boil"]
			}`,
			want: []string{"Missing or invalid prepTime"},
		},
		{
			name: "zero servings",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 0,
				"ingredients": [{"item": "carrot"}],
				"instructions": ["Boil"]
			}`,
			want: []string{"Missing or invalid servings"},
		},
		{
			name: "empty ingredients",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [],
				"instructions": ["Boil"]
			}`,
			want: []string{"Missing or invalid ingredients array"},
		},
		{
			name: "invalid ingredient fields",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"amount": 3}, {"item": "carrot", "unit": 7}],
				"instructions": ["Boil"]
			}`,
			want: []string{
				"Ingredient 0: missing or invalid item",
				"Ingredient 0: amount must be string",
				"Ingredient 1: unit must be string",
			},
		},
		{
			name: "neither stages nor instructions",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}]
			}`,
			want: []string{"Must have either stages or instructions"},
		},
		{
			name: "both stages and instructions",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"stages": [{"title": "Prep", "instructions": ["Chop"]}],
				"instructions": ["Boil"]
			}`,
			want: []string{"Cannot have both stages and instructions - choose one"},
		},
		{
			name: "empty instructions",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"instructions": []
			}`,
			want: []string{"Instructions array must not be empty"},
		},
		{
			name: "non-string instruction",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"instructions": ["Boil", 5]
			}`,
			want: []string{"All instructions must be strings"},
		},
		{
			name: "empty stages",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"stages": []
			}`,
			want: []string{"Stages array must not be empty"},
		},
		{
			name: "invalid stage",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"stages": [{"instructions": []}, {"title": "Serve", "instructions": ["Plate"]}]
			}`,
			want: []string{
				"Stage 0: missing or invalid title",
				"Stage 0: missing or invalid instructions array",
			},
		},
		{
			name: "invalid optional fields",
			recipe: `{
				"name": "Soup",
				"category": "soups-stews",
				"prepTime": 10,
				"waitTime": 20,
				"servings": 4,
				"ingredients": [{"item": "carrot"}],
				"instructions": ["Boil"],
				"difficulty": 3,
				"mainIngredient": [],
				"tags": ["ok", 1],
				"comments": "nope",
				"description": 9,
				"sourceUrl": false
			}`,
			want: []string{
				"Invalid difficulty: must be string",
				"Invalid mainIngredient: must be string",
				"Invalid tags: must be array of strings",
				"Invalid comments: must be array of strings",
				"Invalid description: must be string",
				"Invalid sourceUrl: must be string",
			},
		},
		{
			name:   "everything missing collects all violations",
			recipe: `{}`,
			want: []string{
				"Missing or invalid name",
				"Missing or invalid category",
				"Missing or invalid prepTime",
				"Missing or invalid waitTime",
				"Missing or invalid servings",
				"Missing or invalid ingredients array",
				"Must have either stages or instructions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(mustRaw(t, tt.recipe))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDeterministic(t *testing.T) {
	raw := mustRaw(t, `{"name": 1, "servings": 0}`)
	first := Validate(raw)
	second := Validate(raw)
	assert.Equal(t, first, second)
}
