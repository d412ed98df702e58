package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxxcyber/fridgelist/internal/models"
)

func TestValidateAmount(t *testing.T) {
	v := NewValidator(0)

	tests := []struct {
		name  string
		input string
		valid bool
		want  float64
	}{
		{"decimal point", "12.5", true, 12.5},
		{"decimal comma", "3,99", true, 3.99},
		{"rounded", "1.005001", true, 1.01},
		{"zero", "0", true, 0},
		{"empty", "  ", false, 0},
		{"text", "zwölf", false, 0},
		{"negative", "-1", false, 0},
		{"too large", "100001", false, 0},
		{"not a number", "NaN", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.ValidateAmount(tt.input)
			assert.Equal(t, tt.valid, r.Valid, r.Error)
			if tt.valid {
				assert.Equal(t, tt.want, r.Float())
			} else {
				assert.NotEmpty(t, r.Error)
			}
		})
	}
}

func TestValidateStoreName(t *testing.T) {
	v := NewValidator(0)

	r := v.ValidateStoreName("  REWE ")
	assert.True(t, r.Valid)
	assert.Equal(t, "REWE", r.String())

	r = v.ValidateStoreName("")
	assert.False(t, r.Valid)
	assert.Equal(t, "Bitte gib ein Geschäft ein", r.Error)

	r = v.ValidateStoreName(strings.Repeat("ä", MaxNameLength+1))
	assert.False(t, r.Valid)
}

func TestValidateServingsUnitDate(t *testing.T) {
	v := NewValidator(0)

	assert.Equal(t, 4, v.ValidateServings("4").Int())
	assert.False(t, v.ValidateServings("0").Valid)
	assert.False(t, v.ValidateServings("2.5").Valid)

	assert.True(t, v.ValidateUnit("EL").Valid)
	assert.False(t, v.ValidateUnit("Tasse").Valid)

	assert.True(t, v.ValidateDate("2024-02-29").Valid)
	assert.False(t, v.ValidateDate("2023-02-29").Valid)
	assert.False(t, v.ValidateDate("05.01.2024").Valid)
}

func TestValidateImageFile(t *testing.T) {
	v := NewValidator(1024 * 1024)

	assert.True(t, v.ValidateImageFile("image/PNG", 100).Valid)
	assert.False(t, v.ValidateImageFile("application/pdf", 100).Valid)
	assert.False(t, v.ValidateImageFile("image/jpeg", 0).Valid)
	assert.False(t, v.ValidateImageFile("image/jpeg", 2*1024*1024).Valid)
}

func TestValidateRecipe(t *testing.T) {
	v := NewValidator(0)

	valid := models.Recipe{
		ID:       "r1",
		Name:     "Pfannkuchen",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Amount: 250, Unit: "g", Name: "Mehl"},
		},
	}
	assert.True(t, v.ValidateRecipe(valid).Valid)

	broken := valid
	broken.ID = ""
	broken.Servings = 0
	broken.Ingredients = []models.Ingredient{{Amount: -1, Unit: "Tasse", Name: ""}}

	r := v.ValidateRecipe(broken)
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors, 5)
	assert.Contains(t, r.Errors, "Rezept-ID fehlt")
	assert.Contains(t, r.Errors, "Zutat 1: ungültige Menge")
	assert.Contains(t, r.Errors, "Zutat 1: Ungültige Einheit")

	empty := valid
	empty.Ingredients = nil
	assert.Equal(t, []string{"Bitte füge mindestens eine Zutat hinzu"}, v.ValidateRecipe(empty).Errors)
}
