package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxxcyber/fridgelist/internal/models"
)

const tinyPNG = "data:image/png;base64,iVBORw0KGgo="

func TestValidateImageDataURL(t *testing.T) {
	s := NewSanitizer(0)

	url, ok := s.ValidateImageDataURL(" " + tinyPNG + " ")
	assert.True(t, ok)
	assert.Equal(t, tinyPNG, url)

	url, ok = s.ValidateImageDataURL("data:image/jpg;base64,iVBORw0KGgo=")
	assert.True(t, ok)
	assert.Equal(t, "data:image/jpeg;base64,iVBORw0KGgo=", url)

	for _, bad := range []string{
		"",
		"https://example.com/bild.png",
		"data:image/gif;base64,R0lGODlh",
		"data:image/png;base64,<script>",
		"data:text/html;base64,PGI+",
	} {
		_, ok := s.ValidateImageDataURL(bad)
		assert.False(t, ok, bad)
	}
}

func TestValidateImageDataURLSizeLimit(t *testing.T) {
	s := NewSanitizer(3)

	_, ok := s.ValidateImageDataURL(tinyPNG + "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.False(t, ok)
}

func TestSanitizeText(t *testing.T) {
	s := NewSanitizer(0)

	assert.Equal(t, "Suppe", s.SanitizeText("  <b>Suppe</b> "))
	assert.Equal(t, "Salz & Pfeffer", s.SanitizeText("Salz & Pfeffer"))
}

func TestSanitizeRecipe(t *testing.T) {
	s := NewSanitizer(0)

	in := models.Recipe{
		ID:           "r1",
		Name:         "<i>Suppe</i>",
		Servings:     2,
		Image:        "javascript:alert(1)",
		Instructions: "Kochen <img src=x>",
		Ingredients:  []models.Ingredient{{Amount: 1, Unit: "l", Name: "<b>Wasser</b>"}},
	}

	out := s.SanitizeRecipe(in)
	assert.Equal(t, "Suppe", out.Name)
	assert.Equal(t, "Kochen", out.Instructions)
	assert.Empty(t, out.Image)
	assert.Equal(t, "Wasser", out.Ingredients[0].Name)
	assert.Equal(t, "<b>Wasser</b>", in.Ingredients[0].Name, "input is left untouched")

	in.Image = tinyPNG
	assert.Equal(t, tinyPNG, s.SanitizeRecipe(in).Image)
}
