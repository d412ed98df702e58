package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// ShoppingListParser turns a markdown checklist (as exported by Mealie and
// most note apps) into shopping items
type ShoppingListParser struct {
	linePattern     *regexp.Regexp
	textPattern     *regexp.Regexp
	quantityPattern *regexp.Regexp
	rangePattern    *regexp.Regexp
	fractionPattern *regexp.Regexp
	mixedPattern    *regexp.Regexp
	wholePattern    *regexp.Regexp
	unitPattern     *regexp.Regexp
	notesPattern    *regexp.Regexp
	spacePattern    *regexp.Regexp
}

// Unicode vulgar fractions
var unicodeFractions = map[rune]float64{
	'¼': 0.25,
	'½': 0.5,
	'¾': 0.75,
	'⅓': 0.333333,
	'⅔': 0.666667,
	'⅕': 0.2,
	'⅙': 0.166667,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

var superscriptDigits = map[rune]int{
	'⁰': 0, '¹': 1, '²': 2, '³': 3,
	'⁴': 4, '⁵': 5, '⁶': 6, '⁷': 7,
	'⁸': 8, '⁹': 9,
}

var subscriptDigits = map[rune]int{
	'₀': 0, '₁': 1, '₂': 2, '₃': 3,
	'₄': 4, '₅': 5, '₆': 6, '₇': 7,
	'₈': 8, '₉': 9,
}

// unitAliases maps what people type to the app's unit set
var unitAliases = map[string]string{
	"g": "g", "gr": "g", "gramm": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kilo": "kg", "kilogramm": "kg",
	"ml": "ml", "milliliter": "ml",
	"l": "l", "liter": "l", "litre": "l",
	"el": "EL", "essl": "EL", "esslöffel": "EL", "tbsp": "EL", "tablespoon": "EL", "tablespoons": "EL",
	"tl": "TL", "teel": "TL", "teelöffel": "TL", "tsp": "TL", "teaspoon": "TL", "teaspoons": "TL",
	"stk": "Stück", "stück": "Stück", "st": "Stück", "pc": "Stück", "pcs": "Stück", "piece": "Stück", "pieces": "Stück",
	"prise": "Prise", "prisen": "Prise", "pinch": "Prise",
	"bund": "Bund", "bunch": "Bund",
	"dose": "Dose", "dosen": "Dose", "can": "Dose", "cans": "Dose",
	"packung": "Packung", "packungen": "Packung", "pck": "Packung", "pkg": "Packung", "pack": "Packung",
	"becher": "Becher",
	"zehe": "Zehe", "zehen": "Zehe", "clove": "Zehe", "cloves": "Zehe",
	"scheibe": "Scheibe", "scheiben": "Scheibe", "slice": "Scheibe", "slices": "Scheibe",
}

// textAmounts are quantities that cannot be reduced
var textAmounts = []string{"nach Geschmack", "eine Prise", "ein paar", "etwas", "wenig"}

// NewShoppingListParser creates a new parser instance
func NewShoppingListParser() *ShoppingListParser {
	aliases := make([]string, 0, len(unitAliases))
	for alias := range unitAliases {
		aliases = append(aliases, regexp.QuoteMeta(alias))
	}
	// longest first so "kg" wins over "g"
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})

	texts := make([]string, 0, len(textAmounts))
	for _, t := range textAmounts {
		texts = append(texts, regexp.QuoteMeta(t))
	}

	return &ShoppingListParser{
		// - [ ] item, - [x] item, - item, * item
		linePattern: regexp.MustCompile(`^\s*[-*]\s+(?:\[([ xX]?)\]\s*)?(.*)$`),

		textPattern: regexp.MustCompile(`(?i)^(` + strings.Join(texts, "|") + `)(?:\s+|$)`),

		// 1, 1.5, 1,5
		quantityPattern: regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*`),

		// 2 - 3
		rangePattern: regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*-\s*(\d+(?:[.,]\d+)?)\s*`),

		// 1/2
		fractionPattern: regexp.MustCompile(`^(\d+)/(\d+)\s*`),

		// 1 1/2
		mixedPattern: regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s*`),

		// 1 followed by a unicode fraction
		wholePattern: regexp.MustCompile(`^(\d+)\s*`),

		unitPattern: regexp.MustCompile(`(?i)^(` + strings.Join(aliases, "|") + `)\.?(?:\s+|$)`),

		notesPattern: regexp.MustCompile(`\(([^)]+)\)`),

		spacePattern: regexp.MustCompile(`\s+`),
	}
}

// Parse reads list lines and returns the items in order. Lines that are
// not list entries are skipped.
func (p *ShoppingListParser) Parse(content string) ([]models.ShoppingItem, error) {
	var items []models.ShoppingItem

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := p.linePattern.FindStringSubmatch(line)
		if len(matches) < 3 {
			continue
		}

		item, ok := p.parseLine(strings.TrimSpace(matches[2]))
		if !ok {
			continue
		}
		item.Checked = strings.EqualFold(matches[1], "x")
		items = append(items, item)
	}

	return items, nil
}

// ParseLine parses a single entry without the list marker
func (p *ShoppingListParser) ParseLine(content string) (models.ShoppingItem, bool) {
	return p.parseLine(strings.TrimSpace(content))
}

func (p *ShoppingListParser) parseLine(content string) (models.ShoppingItem, bool) {
	var item models.ShoppingItem
	remaining := content

	if matches := p.textPattern.FindStringSubmatch(remaining); len(matches) == 2 {
		item.Amount = models.TextAmount(matches[1])
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	} else {
		var qty float64
		remaining, qty = p.extractQuantity(remaining)
		item.Amount = models.NumericAmount(qty)
		remaining, item.Unit = p.extractUnit(remaining)
	}

	name, notes := p.extractNotes(remaining)
	name = p.cleanName(name)
	if name == "" {
		return models.ShoppingItem{}, false
	}
	if notes != "" {
		name += " (" + notes + ")"
	}
	item.Name = name

	return item, true
}

func parseDecimal(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return f
}

// extractQuantity handles ranges, fractions and decimals. No quantity means 1.
func (p *ShoppingListParser) extractQuantity(s string) (string, float64) {
	s = strings.TrimSpace(s)

	// ranges use the average
	if matches := p.rangePattern.FindStringSubmatch(s); len(matches) == 3 {
		low, high := parseDecimal(matches[1]), parseDecimal(matches[2])
		return strings.TrimSpace(s[len(matches[0]):]), roundHalfUp((low + high) / 2)
	}

	if matches := p.wholePattern.FindStringSubmatch(s); len(matches) == 2 {
		rest, frac := p.extractUnicodeFraction(s[len(matches[0]):])
		if frac > 0 {
			return rest, roundHalfUp(parseDecimal(matches[1]) + frac)
		}
	}

	if matches := p.mixedPattern.FindStringSubmatch(s); len(matches) == 4 {
		whole, num, denom := parseDecimal(matches[1]), parseDecimal(matches[2]), parseDecimal(matches[3])
		if denom != 0 {
			return strings.TrimSpace(s[len(matches[0]):]), roundHalfUp(whole + num/denom)
		}
	}

	if rest, frac := p.extractUnicodeFraction(s); frac > 0 {
		return rest, roundHalfUp(frac)
	}

	if matches := p.fractionPattern.FindStringSubmatch(s); len(matches) == 3 {
		num, denom := parseDecimal(matches[1]), parseDecimal(matches[2])
		if denom != 0 {
			return strings.TrimSpace(s[len(matches[0]):]), roundHalfUp(num / denom)
		}
	}

	if matches := p.quantityPattern.FindStringSubmatch(s); len(matches) == 2 {
		return strings.TrimSpace(s[len(matches[0]):]), parseDecimal(matches[1])
	}

	return s, 1
}

// extractUnicodeFraction reads ½ style fractions and ¹/₂ style
// superscript/subscript pairs
func (p *ShoppingListParser) extractUnicodeFraction(s string) (string, float64) {
	runes := []rune(strings.TrimLeftFunc(s, unicode.IsSpace))
	if len(runes) == 0 {
		return s, 0
	}

	if val, ok := unicodeFractions[runes[0]]; ok {
		return strings.TrimSpace(string(runes[1:])), val
	}

	idx, numerator := 0, 0
	for idx < len(runes) {
		digit, ok := superscriptDigits[runes[idx]]
		if !ok {
			break
		}
		numerator = numerator*10 + digit
		idx++
	}
	if idx == 0 || idx >= len(runes) || (runes[idx] != '⁄' && runes[idx] != '/') {
		return s, 0
	}
	idx++

	start, denominator := idx, 0
	for idx < len(runes) {
		digit, ok := subscriptDigits[runes[idx]]
		if !ok {
			break
		}
		denominator = denominator*10 + digit
		idx++
	}
	if idx == start || denominator == 0 {
		return s, 0
	}

	return strings.TrimSpace(string(runes[idx:])), float64(numerator) / float64(denominator)
}

// extractUnit reads and normalises a leading unit
func (p *ShoppingListParser) extractUnit(s string) (string, string) {
	s = strings.TrimSpace(s)

	if matches := p.unitPattern.FindStringSubmatch(s); len(matches) == 2 {
		rest := strings.TrimSpace(s[len(matches[0]):])
		// a bare unit word is the item itself, e.g. "1 Dose"
		if rest == "" {
			return s, ""
		}
		return rest, unitAliases[strings.ToLower(matches[1])]
	}

	return s, ""
}

// extractNotes splits off parenthesised text and anything after a comma
func (p *ShoppingListParser) extractNotes(s string) (string, string) {
	var notes []string

	if matches := p.notesPattern.FindAllStringSubmatch(s, -1); len(matches) > 0 {
		for _, m := range matches {
			notes = append(notes, strings.TrimSpace(m[1]))
		}
		s = p.notesPattern.ReplaceAllString(s, "")
	}

	if idx := strings.Index(s, ","); idx >= 0 {
		if after := strings.TrimSpace(s[idx+1:]); after != "" {
			notes = append(notes, after)
		}
		s = s[:idx]
	}

	return strings.TrimSpace(s), strings.Join(notes, "; ")
}

func (p *ShoppingListParser) cleanName(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ".,;:-_")
	return strings.TrimSpace(p.spacePattern.ReplaceAllString(s, " "))
}
