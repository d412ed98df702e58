package views

import (
	"github.com/foxxcyber/fridgelist/internal/models"
)

// ArchiveEntryRow is one trip in the month list
type ArchiveEntryRow struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	StoreName string      `json:"store_name"`
	Amount    string      `json:"amount"`
	Open      *Navigation `json:"open"`
}

// MonthView is one month card of the archive list
type MonthView struct {
	Key     string            `json:"key"`
	Label   string            `json:"label"`
	Total   float64           `json:"total"`
	Display string            `json:"total_display"`
	Entries []ArchiveEntryRow `json:"entries"`
}

// ArchiveListView is the archive overview screen
type ArchiveListView struct {
	Title  string      `json:"title"`
	Months []MonthView `json:"months,omitempty"`
	Empty  *EmptyState `json:"empty,omitempty"`
}

// ArchiveItemRow is one read-only line of an archived list
type ArchiveItemRow struct {
	Marker  string `json:"marker"`
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	Checked bool   `json:"checked"`
}

// ArchiveDetailView shows one archived trip
type ArchiveDetailView struct {
	Title        string           `json:"title"`
	Back         *Navigation      `json:"back,omitempty"`
	ReceiptImage string           `json:"receipt_image,omitempty"`
	Date         string           `json:"date,omitempty"`
	StoreName    string           `json:"store_name,omitempty"`
	Amount       string           `json:"amount,omitempty"`
	Items        []ArchiveItemRow `json:"items,omitempty"`
	Empty        *EmptyState      `json:"empty,omitempty"`
}

// RenderArchiveList describes the grouped archive
func (f *Formatter) RenderArchiveList(groups []models.MonthGroup) ArchiveListView {
	view := ArchiveListView{Title: "Archiv"}
	if len(groups) == 0 {
		empty := NoArchive
		view.Empty = &empty
		return view
	}

	for _, group := range groups {
		month := MonthView{
			Key:     group.Key,
			Label:   group.Label,
			Total:   group.Total,
			Display: f.Currency(group.Total),
			Entries: make([]ArchiveEntryRow, 0, len(group.Entries)),
		}
		for _, entry := range group.Entries {
			date := entry.Date
			if t, ok := ParseDate(entry.Date); ok {
				date = f.ShortDate(t)
			}
			month.Entries = append(month.Entries, ArchiveEntryRow{
				ID:        entry.ID,
				Date:      date,
				StoreName: entry.StoreName,
				Amount:    f.Currency(entry.Amount),
				Open:      NavigateTo(RouteArchiveDetail, "entryId", entry.ID),
			})
		}
		view.Months = append(view.Months, month)
	}

	return view
}

// RenderArchiveDetail describes one entry. A nil entry renders the not-found state.
func (f *Formatter) RenderArchiveDetail(entry *models.ArchiveEntry) ArchiveDetailView {
	if entry == nil {
		empty := EntryNotFound
		return ArchiveDetailView{Title: "Einkauf Details", Empty: &empty}
	}

	date := entry.Date
	if t, ok := ParseDate(entry.Date); ok {
		date = f.LongDate(t)
	}

	view := ArchiveDetailView{
		Title:        "Einkauf Details",
		Back:         NavigateTo(RouteArchive),
		ReceiptImage: entry.ReceiptImage,
		Date:         date,
		StoreName:    entry.StoreName,
		Amount:       f.Currency(entry.Amount),
		Items:        make([]ArchiveItemRow, 0, len(entry.ShoppingList)),
	}

	for _, item := range entry.ShoppingList {
		marker := "○"
		if item.Checked {
			marker = "✓"
		}
		amount := item.Amount.String()
		if item.Amount.IsNumeric() && item.Unit != "" {
			amount += " " + item.Unit
		}
		view.Items = append(view.Items, ArchiveItemRow{
			Marker:  marker,
			Name:    item.Name,
			Amount:  amount,
			Checked: item.Checked,
		})
	}

	return view
}
