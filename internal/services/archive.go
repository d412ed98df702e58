package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/validation"
	"github.com/foxxcyber/fridgelist/internal/views"
)

// UnknownMonthKey groups entries whose date cannot be read
const UnknownMonthKey = "unbekannt"

// ArchiveInput is the raw form data for a new archive entry
type ArchiveInput struct {
	StoreName    string
	Amount       string
	Date         string
	ReceiptImage string
}

// ArchiveResult is returned after a successful archive
type ArchiveResult struct {
	Entry    models.ArchiveEntry `json:"entry"`
	Message  string              `json:"message"`
	Navigate *views.Navigation   `json:"navigate"`
}

// ArchiveService archives shopping trips and reads them back
type ArchiveService struct {
	validator *validation.Validator
	sanitizer *validation.Sanitizer
	formatter *views.Formatter
	log       *zap.Logger
	now       func() time.Time
}

// NewArchiveService creates a new archive service
func NewArchiveService(validator *validation.Validator, sanitizer *validation.Sanitizer, formatter *views.Formatter, log *zap.Logger) *ArchiveService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ArchiveService{
		validator: validator,
		sanitizer: sanitizer,
		formatter: formatter,
		log:       log,
		now:       time.Now,
	}
}

// Create validates the input, appends an entry with a snapshot of the
// current list to the archive and clears the list. If the list cannot be
// cleared the archive is restored to its previous state.
func (s *ArchiveService) Create(ctx context.Context, records Records, input ArchiveInput) (*ArchiveResult, error) {
	store := s.validator.ValidateStoreName(s.sanitizer.SanitizeText(input.StoreName))
	if !store.Valid {
		return nil, invalid(store.Error)
	}

	amount := s.validator.ValidateAmount(input.Amount)
	if !amount.Valid {
		return nil, invalid(amount.Error)
	}

	date := s.now().Format(validation.DateLayout)
	if input.Date != "" {
		d := s.validator.ValidateDate(input.Date)
		if !d.Valid {
			return nil, invalid(d.Error)
		}
		date = d.String()
	}

	var receipt string
	if input.ReceiptImage != "" {
		image, ok := s.sanitizer.ValidateImageDataURL(input.ReceiptImage)
		if !ok {
			return nil, invalid("Ungültiges Bild")
		}
		receipt = image
	}

	list, err := records.LoadShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNoShoppingList
	}

	entry := models.ArchiveEntry{
		ID:           uuid.New().String(),
		StoreName:    store.String(),
		Amount:       amount.Float(),
		Date:         date,
		ReceiptImage: receipt,
		ShoppingList: models.SnapshotItems(list.Items),
	}

	previous, err := records.LoadArchive(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]models.ArchiveEntry, 0, len(previous)+1)
	updated = append(updated, previous...)
	updated = append(updated, entry)

	if err := records.SaveArchive(ctx, updated); err != nil {
		return nil, persistence(OpSaveArchive, err)
	}

	if err := records.ClearShoppingList(ctx); err != nil {
		clearErr := persistence(OpClearArchivedList, err)
		if rollbackErr := records.SaveArchive(ctx, previous); rollbackErr != nil {
			s.log.Error("Failed to restore archive after clear failure",
				zap.String("entry_id", entry.ID),
				zap.Error(err),
				zap.NamedError("rollback_error", rollbackErr))
			return nil, joinFailures(clearErr, rollbackErr)
		}
		s.log.Warn("Archive rolled back after clear failure", zap.String("entry_id", entry.ID), zap.Error(err))
		return nil, clearErr
	}

	s.log.Info("Archived shopping trip",
		zap.String("entry_id", entry.ID),
		zap.Int("items", len(entry.ShoppingList)),
		zap.Float64("amount", entry.Amount))

	return &ArchiveResult{
		Entry:    entry,
		Message:  "Einkauf archiviert!",
		Navigate: views.NavigateTo(views.RouteArchive),
	}, nil
}

// List returns the archive grouped by month, newest month first
func (s *ArchiveService) List(ctx context.Context, records Records) ([]models.MonthGroup, error) {
	entries, err := records.LoadArchive(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByMonth(entries, s.formatter), nil
}

// Get returns one entry by id
func (s *ArchiveService) Get(ctx context.Context, records Records, id string) (*models.ArchiveEntry, error) {
	entries, err := records.LoadArchive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, ErrArchiveEntryNotFound
}

// GroupByMonth buckets entries by the YYYY-MM prefix of their date.
// Groups are ordered by key, newest first, with unreadable dates last.
// Entries keep their archive order inside a group.
func GroupByMonth(entries []models.ArchiveEntry, formatter *views.Formatter) []models.MonthGroup {
	index := make(map[string]int)
	var groups []models.MonthGroup

	for _, entry := range entries {
		key, label := UnknownMonthKey, "Unbekanntes Datum"
		if t, ok := views.ParseDate(entry.Date); ok {
			key = t.Format("2006-01")
			label = formatter.MonthLabel(t.Year(), t.Month())
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.MonthGroup{Key: key, Label: label})
		}
		groups[i].Total += entry.Amount
		groups[i].Entries = append(groups[i].Entries, entry)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ka, kb := groups[a].Key, groups[b].Key
		if ka == UnknownMonthKey || kb == UnknownMonthKey {
			return kb == UnknownMonthKey && ka != UnknownMonthKey
		}
		return ka > kb
	})

	return groups
}
