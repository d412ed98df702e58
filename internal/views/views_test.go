package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/fridgelist/internal/models"
)

func TestNavigateTo(t *testing.T) {
	nav := NavigateTo(RouteArchiveDetail, "entryId", "e1")
	assert.Equal(t, RouteArchiveDetail, nav.Route)
	assert.Equal(t, map[string]string{"entryId": "e1"}, nav.Params)

	assert.Nil(t, NavigateTo(RouteShopping).Params)
}

func TestFormatterDates(t *testing.T) {
	f := NewFormatter("de-DE")
	day := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Januar 2024", f.MonthLabel(2024, time.January))
	assert.Equal(t, "Dezember 2023", f.MonthLabel(2023, time.December))
	assert.Equal(t, "5.1.2024", f.ShortDate(day))
	assert.Equal(t, "Freitag, 5. Januar 2024", f.LongDate(day))
	assert.Contains(t, f.Currency(12.5), "€")
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-03-09")
	require.True(t, ok)
	assert.Equal(t, time.March, d.Month())

	_, ok = ParseDate("2024-03-09T10:00:00Z")
	assert.True(t, ok)

	_, ok = ParseDate("gestern")
	assert.False(t, ok)
}

func TestRenderFridge(t *testing.T) {
	items := []models.ShoppingItem{
		{Name: "Milch", Amount: models.NumericAmount(2), Unit: "l"},
		{Name: "Salz", Amount: models.TextAmount("etwas")},
		{Name: "Eier", Amount: models.NumericAmount(6), Unit: "Stück"},
	}
	selection := map[int]models.Amount{
		0: models.NumericAmount(0.5),
		1: models.TextAmount("etwas"),
	}

	view := RenderFridge(items, selection)
	require.Len(t, view.Items, 3)
	assert.Equal(t, "Kühlschrank Check", view.Title)
	assert.Equal(t, RouteShopping, view.Back.Route)

	milk := view.Items[0]
	assert.True(t, milk.Selected)
	assert.Equal(t, "Benötigt: 2 l", milk.Needed)
	assert.Equal(t, "Menge die du hast (l):", milk.HaveLabel)
	assert.Equal(t, 4.0, milk.MaxHave)
	require.NotNil(t, milk.HaveAmount)
	assert.Equal(t, 0.5, *milk.HaveAmount)

	salt := view.Items[1]
	assert.True(t, salt.Selected)
	assert.False(t, salt.Numeric)
	assert.Empty(t, salt.HaveLabel)
	assert.Nil(t, salt.HaveAmount)

	eggs := view.Items[2]
	assert.False(t, eggs.Selected)
	assert.Empty(t, eggs.HaveLabel)
}

func TestRenderFridgeEmpty(t *testing.T) {
	view := RenderFridge(nil, nil)
	require.NotNil(t, view.Empty)
	assert.Equal(t, NoShoppingList, *view.Empty)
	assert.Empty(t, view.Items)
}

func TestRenderArchiveList(t *testing.T) {
	f := NewFormatter("de-DE")

	empty := f.RenderArchiveList(nil)
	require.NotNil(t, empty.Empty)
	assert.Equal(t, NoArchive, *empty.Empty)

	view := f.RenderArchiveList([]models.MonthGroup{{
		Key:   "2024-01",
		Label: "Januar 2024",
		Total: 30,
		Entries: []models.ArchiveEntry{
			{ID: "e1", StoreName: "REWE", Amount: 10, Date: "2024-01-05"},
			{ID: "e2", StoreName: "Aldi", Amount: 20, Date: "kaputt"},
		},
	}})

	require.Len(t, view.Months, 1)
	month := view.Months[0]
	assert.Equal(t, "Januar 2024", month.Label)
	assert.Contains(t, month.Display, "30")
	require.Len(t, month.Entries, 2)
	assert.Equal(t, "5.1.2024", month.Entries[0].Date)
	assert.Equal(t, "kaputt", month.Entries[1].Date)
	assert.Equal(t, NavigateTo(RouteArchiveDetail, "entryId", "e1"), month.Entries[0].Open)
}

func TestRenderArchiveDetail(t *testing.T) {
	f := NewFormatter("de-DE")

	missing := f.RenderArchiveDetail(nil)
	require.NotNil(t, missing.Empty)
	assert.Equal(t, EntryNotFound, *missing.Empty)

	view := f.RenderArchiveDetail(&models.ArchiveEntry{
		ID:        "e1",
		StoreName: "Lidl",
		Amount:    7.5,
		Date:      "2024-01-05",
		ShoppingList: []models.ArchiveItem{
			{Name: "Milch", Amount: models.NumericAmount(1), Unit: "l", Checked: true},
			{Name: "Salz", Amount: models.TextAmount("etwas"), Unit: "g"},
		},
	})

	assert.Equal(t, "Einkauf Details", view.Title)
	assert.Equal(t, "Freitag, 5. Januar 2024", view.Date)
	assert.Equal(t, RouteArchive, view.Back.Route)
	assert.Equal(t, []ArchiveItemRow{
		{Marker: "✓", Name: "Milch", Amount: "1 l", Checked: true},
		{Marker: "○", Name: "Salz", Amount: "etwas"},
	}, view.Items)
}

func TestRenderRecipeEdit(t *testing.T) {
	missing := RenderRecipeEdit(nil, nil, "", nil)
	require.NotNil(t, missing.Empty)
	assert.Equal(t, RecipeNotFound, *missing.Empty)

	recipe := &models.Recipe{ID: "r1", Name: "Suppe", Servings: 2}
	rows := []models.IngredientRow{{Amount: "1", Unit: "l", Name: "Wasser"}}

	view := RenderRecipeEdit(recipe, rows, "data:image/png;base64,AAAA", []string{"l"})
	assert.Equal(t, "Rezept bearbeiten", view.Title)
	assert.Equal(t, NavigateTo(RouteRecipeDetail, "recipeId", "r1"), view.Back)
	assert.Equal(t, rows, view.Rows)

	rows[0].Name = "Brühe"
	assert.Equal(t, "Wasser", view.Rows[0].Name)
}
