package validation

import (
	"encoding/base64"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/foxxcyber/fridgelist/internal/models"
)

var dataURLPattern = regexp.MustCompile(`^data:image/(jpeg|jpg|png|webp);base64,([A-Za-z0-9+/]+={0,2})$`)

// Sanitizer normalises values before they are embedded or stored
type Sanitizer struct {
	policy      *bluemonday.Policy
	maxURLBytes int
}

// NewSanitizer creates a sanitizer that accepts images up to maxImageBytes
func NewSanitizer(maxImageBytes int64) *Sanitizer {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	// base64 grows the payload by 4/3, plus the header
	maxURL := int(maxImageBytes)*4/3 + 64
	return &Sanitizer{
		policy:      bluemonday.StrictPolicy(),
		maxURLBytes: maxURL,
	}
}

// ValidateImageDataURL returns the normalised data URL, or false if it is
// not a base64 jpeg/png/webp image whose payload decodes.
func (s *Sanitizer) ValidateImageDataURL(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" || len(url) > s.maxURLBytes {
		return "", false
	}

	matches := dataURLPattern.FindStringSubmatch(url)
	if matches == nil {
		return "", false
	}

	payload, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil || len(payload) == 0 {
		return "", false
	}

	format := matches[1]
	if format == "jpg" {
		format = "jpeg"
	}
	return "data:image/" + format + ";base64," + matches[2], true
}

// SanitizeText strips markup and surrounding whitespace. Entities the
// policy escapes are decoded again since values are stored as plain text.
func (s *Sanitizer) SanitizeText(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(value)))
}

// SanitizeRecipe returns a copy of recipe with markup stripped from every
// text field and an invalid image dropped.
func (s *Sanitizer) SanitizeRecipe(recipe models.Recipe) models.Recipe {
	out := recipe
	out.Name = s.SanitizeText(recipe.Name)
	out.Instructions = s.SanitizeText(recipe.Instructions)

	if recipe.Image != "" {
		if image, ok := s.ValidateImageDataURL(recipe.Image); ok {
			out.Image = image
		} else {
			out.Image = ""
		}
	}

	out.Ingredients = make([]models.Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		out.Ingredients = append(out.Ingredients, models.Ingredient{
			Amount: ing.Amount,
			Unit:   s.SanitizeText(ing.Unit),
			Name:   s.SanitizeText(ing.Name),
		})
	}

	return out
}
