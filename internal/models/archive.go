package models

// ArchiveItem is the snapshot of one shopping item at archive time
type ArchiveItem struct {
	Name    string `json:"name"`
	Amount  Amount `json:"amount"`
	Unit    string `json:"unit"`
	Checked bool   `json:"checked"`
}

// ArchiveEntry records one completed shopping trip. Entries are never
// modified after creation.
type ArchiveEntry struct {
	ID           string        `json:"id"`
	StoreName    string        `json:"store_name"`
	Amount       float64       `json:"amount"`
	Date         string        `json:"date"` // YYYY-MM-DD
	ReceiptImage string        `json:"receipt_image,omitempty"`
	ShoppingList []ArchiveItem `json:"shopping_list"`
}

// SnapshotItems copies list items into archive items, dropping
// everything except name, amount, unit and checked.
func SnapshotItems(items []ShoppingItem) []ArchiveItem {
	out := make([]ArchiveItem, 0, len(items))
	for _, item := range items {
		out = append(out, ArchiveItem{
			Name:    item.Name,
			Amount:  item.Amount,
			Unit:    item.Unit,
			Checked: item.Checked,
		})
	}
	return out
}

// MonthGroup aggregates the archive entries of one calendar month
type MonthGroup struct {
	Key     string         `json:"key"` // YYYY-MM
	Label   string         `json:"label"`
	Total   float64        `json:"total"`
	Entries []ArchiveEntry `json:"entries"`
}

// CreateArchiveRequest is the JSON request body for archiving a trip.
// Amount stays raw so the validator sees exactly what was typed.
type CreateArchiveRequest struct {
	StoreName    string    `json:"store_name"`
	Amount       FormValue `json:"amount"`
	Date         string    `json:"date"`
	ReceiptImage string    `json:"receipt_image,omitempty"`
}

// ReceiptSuggestion prefills the archive form from a scanned receipt
type ReceiptSuggestion struct {
	StoreName *string  `json:"store_name,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Date      *string  `json:"date,omitempty"`
	OCRText   string   `json:"ocr_text"`
}
