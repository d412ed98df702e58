package views

import (
	"github.com/foxxcyber/fridgelist/internal/models"
)

// FridgeItemView is one selectable card of the fridge check
type FridgeItemView struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Needed     string   `json:"needed"`
	Selected   bool     `json:"selected"`
	Numeric    bool     `json:"numeric"`
	HaveLabel  string   `json:"have_label,omitempty"`
	HaveAmount *float64 `json:"have_amount,omitempty"`
	MaxHave    float64  `json:"max_have,omitempty"`
}

// FridgeView is the fridge check screen
type FridgeView struct {
	Title string           `json:"title"`
	Intro string           `json:"intro,omitempty"`
	Back  *Navigation      `json:"back,omitempty"`
	Items []FridgeItemView `json:"items,omitempty"`
	Empty *EmptyState      `json:"empty,omitempty"`
}

// RenderFridge describes the fridge check for a list snapshot and the
// current selection (index -> have amount).
func RenderFridge(items []models.ShoppingItem, selection map[int]models.Amount) FridgeView {
	if len(items) == 0 {
		empty := NoShoppingList
		return FridgeView{Title: "Kühlschrank Check", Empty: &empty}
	}

	view := FridgeView{
		Title: "Kühlschrank Check",
		Intro: "Wähle die Artikel aus, die du schon hast, und gib die Menge ein.",
		Back:  NavigateTo(RouteShopping),
		Items: make([]FridgeItemView, 0, len(items)),
	}

	for index, item := range items {
		have, selected := selection[index]
		card := FridgeItemView{
			Index:    index,
			Name:     item.Name,
			Needed:   "Benötigt: " + item.DisplayAmount(),
			Selected: selected,
			Numeric:  item.Amount.IsNumeric(),
		}

		if selected && card.Numeric {
			required, _ := item.Amount.Float()
			card.HaveLabel = "Menge die du hast (" + item.Unit + "):"
			card.MaxHave = required * 2
			if v, ok := have.Float(); ok {
				card.HaveAmount = &v
			}
		}

		view.Items = append(view.Items, card)
	}

	return view
}
