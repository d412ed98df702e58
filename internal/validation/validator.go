// Package validation checks user input and sanitises stored records.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// Limits
const (
	MaxNameLength         = 100
	MaxInstructionsLength = 10000
	MaxAmount             = 100000
	MinServings           = 1
	MaxServings           = 100
	MaxIngredients        = 100
	DefaultMaxImageBytes  = 5 * 1024 * 1024
	DateLayout            = "2006-01-02"
)

// Units lists the units an ingredient may use
var Units = []string{
	"g", "kg", "ml", "l", "EL", "TL", "Stück", "Prise", "Bund", "Dose", "Packung", "Becher", "Zehe", "Scheibe",
}

// imageTypes lists the accepted upload content types
var imageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
}

// Result is the outcome of validating one field. Value holds the
// normalised input when Valid is true.
type Result struct {
	Valid bool
	Value interface{}
	Error string
}

// RecipeResult is the outcome of validating a whole recipe
type RecipeResult struct {
	Valid  bool
	Errors []string
}

func ok(value interface{}) Result {
	return Result{Valid: true, Value: value}
}

func fail(message string) Result {
	return Result{Error: message}
}

// String returns Value as a string
func (r Result) String() string {
	s, _ := r.Value.(string)
	return s
}

// Float returns Value as a float64
func (r Result) Float() float64 {
	f, _ := r.Value.(float64)
	return f
}

// Int returns Value as an int
func (r Result) Int() int {
	i, _ := r.Value.(int)
	return i
}

// Validator checks form input against the app's format rules
type Validator struct {
	MaxImageBytes int64
}

// NewValidator creates a validator. A non-positive maxImageBytes uses the default.
func NewValidator(maxImageBytes int64) *Validator {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &Validator{MaxImageBytes: maxImageBytes}
}

func validateText(raw, emptyMessage, label string) Result {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fail(emptyMessage)
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return fail(fmt.Sprintf("%s darf maximal %d Zeichen lang sein", label, MaxNameLength))
	}
	return ok(value)
}

// ValidateStoreName checks the name of the shop
func (v *Validator) ValidateStoreName(raw string) Result {
	return validateText(raw, "Bitte gib ein Geschäft ein", "Der Geschäftsname")
}

// ValidateRecipeName checks a recipe title
func (v *Validator) ValidateRecipeName(raw string) Result {
	return validateText(raw, "Bitte gib einen Rezeptnamen ein", "Der Rezeptname")
}

// ValidateIngredientName checks the name of one ingredient
func (v *Validator) ValidateIngredientName(raw string) Result {
	return validateText(raw, "Bitte gib einen Zutatennamen ein", "Der Zutatenname")
}

// ValidateAmount parses a non-negative quantity or price. A decimal comma
// is accepted and the value is rounded to two places.
func (v *Validator) ValidateAmount(raw string) Result {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if value == "" {
		return fail("Bitte gib einen Betrag ein")
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fail("Ungültiger Betrag")
	}
	if f < 0 {
		return fail("Der Betrag darf nicht negativ sein")
	}
	if f > MaxAmount {
		return fail(fmt.Sprintf("Der Betrag darf höchstens %d sein", MaxAmount))
	}

	return ok(math.Round(f*100) / 100)
}

// ValidateServings parses a whole number of servings
func (v *Validator) ValidateServings(raw string) Result {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fail("Ungültige Anzahl Personen")
	}
	if n < MinServings || n > MaxServings {
		return fail(fmt.Sprintf("Die Anzahl Personen muss zwischen %d und %d liegen", MinServings, MaxServings))
	}
	return ok(n)
}

// ValidateUnit checks that the unit is one of Units
func (v *Validator) ValidateUnit(raw string) Result {
	value := strings.TrimSpace(raw)
	for _, unit := range Units {
		if value == unit {
			return ok(unit)
		}
	}
	return fail("Ungültige Einheit")
}

// ValidateDate checks an ISO calendar date
func (v *Validator) ValidateDate(raw string) Result {
	value := strings.TrimSpace(raw)
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fail("Ungültiges Datum")
	}
	return ok(value)
}

// ValidateImageFile checks the content type and size of an uploaded image
func (v *Validator) ValidateImageFile(contentType string, size int64) Result {
	valid := false
	for _, t := range imageTypes {
		if strings.EqualFold(contentType, t) {
			valid = true
			break
		}
	}
	if !valid {
		return fail("Ungültiger Dateityp. Erlaubt sind JPEG, PNG und WebP")
	}
	if size <= 0 {
		return fail("Die Datei ist leer")
	}
	if size > v.MaxImageBytes {
		return fail(fmt.Sprintf("Die Datei ist zu groß. Maximal %d MB", v.MaxImageBytes/(1024*1024)))
	}
	return ok(strings.ToLower(contentType))
}

// ValidateRecipe checks a complete recipe record and collects every problem
func (v *Validator) ValidateRecipe(recipe models.Recipe) RecipeResult {
	var errs []string

	if strings.TrimSpace(recipe.ID) == "" {
		errs = append(errs, "Rezept-ID fehlt")
	}
	if r := v.ValidateRecipeName(recipe.Name); !r.Valid {
		errs = append(errs, r.Error)
	}
	if recipe.Servings < MinServings || recipe.Servings > MaxServings {
		errs = append(errs, fmt.Sprintf("Die Anzahl Personen muss zwischen %d und %d liegen", MinServings, MaxServings))
	}
	if len(recipe.Ingredients) == 0 {
		errs = append(errs, "Bitte füge mindestens eine Zutat hinzu")
	}
	if len(recipe.Ingredients) > MaxIngredients {
		errs = append(errs, fmt.Sprintf("Maximal %d Zutaten erlaubt", MaxIngredients))
	}
	for i, ing := range recipe.Ingredients {
		if ing.Amount < 0 || ing.Amount > MaxAmount || math.IsNaN(ing.Amount) {
			errs = append(errs, fmt.Sprintf("Zutat %d: ungültige Menge", i+1))
		}
		if r := v.ValidateUnit(ing.Unit); !r.Valid {
			errs = append(errs, fmt.Sprintf("Zutat %d: %s", i+1, r.Error))
		}
		if r := v.ValidateIngredientName(ing.Name); !r.Valid {
			errs = append(errs, fmt.Sprintf("Zutat %d: %s", i+1, r.Error))
		}
	}
	if utf8.RuneCountInString(recipe.Instructions) > MaxInstructionsLength {
		errs = append(errs, fmt.Sprintf("Die Zubereitung darf maximal %d Zeichen lang sein", MaxInstructionsLength))
	}

	return RecipeResult{Valid: len(errs) == 0, Errors: errs}
}
