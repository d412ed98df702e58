package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/views"
)

// Outcome of applying a fridge check
type Outcome string

const (
	OutcomeNeedsConfirmation Outcome = "needs_confirmation"
	OutcomeSkipped           Outcome = "skipped"
	OutcomeApplied           Outcome = "applied"
)

// ConfirmEmptyPrompt is shown when nothing was selected
const ConfirmEmptyPrompt = "Du hast keine Artikel ausgewählt. Trotzdem fortfahren?"

// ReconcileResult summarises an apply
type ReconcileResult struct {
	Outcome  Outcome           `json:"outcome"`
	Removed  int               `json:"removed"`
	Reduced  int               `json:"reduced"`
	Message  string            `json:"message,omitempty"`
	Navigate *views.Navigation `json:"navigate,omitempty"`
}

// Reconcile subtracts the amounts the user already has from the list.
// selection maps item index to the amount on hand. Unselected items are
// kept as they are; a selected item is dropped when nothing remains or
// when either side is not a number, otherwise its amount is reduced.
func Reconcile(items []models.ShoppingItem, selection map[int]models.Amount) ([]models.ShoppingItem, int, int) {
	out := make([]models.ShoppingItem, 0, len(items))
	removed, reduced := 0, 0

	for index, item := range items {
		have, selected := selection[index]
		if !selected {
			out = append(out, item)
			continue
		}

		required, requiredNumeric := item.Amount.Float()
		available, haveNumeric := have.Float()
		if !requiredNumeric || !haveNumeric {
			removed++
			continue
		}

		remaining := required - available
		if remaining <= 0 {
			removed++
			continue
		}

		item.Amount = models.NumericAmount(roundHalfUp(remaining))
		out = append(out, item)
		reduced++
	}

	return out, removed, reduced
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// FridgeCheck holds the selection state of one open fridge check. It is
// keyed by index into the list snapshot taken when the check was opened.
type FridgeCheck struct {
	records   Records
	snapshot  []models.ShoppingItem
	selection map[int]models.Amount
}

// NewFridgeCheck opens a fridge check over the current shopping list
func NewFridgeCheck(ctx context.Context, records Records) (*FridgeCheck, error) {
	list, err := records.LoadShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	if list.IsEmpty() {
		return nil, ErrNoShoppingList
	}

	return &FridgeCheck{
		records:   records,
		snapshot:  append([]models.ShoppingItem(nil), list.Items...),
		selection: make(map[int]models.Amount),
	}, nil
}

// Items returns the snapshot the check works on
func (f *FridgeCheck) Items() []models.ShoppingItem {
	return f.snapshot
}

// Selection returns a copy of the current selection
func (f *FridgeCheck) Selection() map[int]models.Amount {
	out := make(map[int]models.Amount, len(f.selection))
	for k, v := range f.selection {
		out[k] = v
	}
	return out
}

// View renders the check
func (f *FridgeCheck) View() views.FridgeView {
	return views.RenderFridge(f.snapshot, f.selection)
}

// Toggle selects or deselects an item. A newly selected item assumes the
// full required amount is on hand.
func (f *FridgeCheck) Toggle(index int) error {
	if index < 0 || index >= len(f.snapshot) {
		return ErrItemIndexOutOfRange
	}

	if _, ok := f.selection[index]; ok {
		delete(f.selection, index)
		return nil
	}
	f.selection[index] = f.snapshot[index].Amount
	return nil
}

// SetHaveAmount updates the amount on hand for a selected numeric item.
// Anything that does not parse to a number >= 0 is ignored and the
// previous value stays.
func (f *FridgeCheck) SetHaveAmount(index int, raw string) bool {
	if _, ok := f.selection[index]; !ok {
		return false
	}
	if !f.snapshot[index].Amount.IsNumeric() {
		return false
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return false
	}

	f.selection[index] = models.NumericAmount(v)
	return true
}

// Apply writes the reconciled list. An empty selection needs confirmation
// and then leaves the list untouched.
func (f *FridgeCheck) Apply(ctx context.Context, confirmEmpty bool) (*ReconcileResult, error) {
	if len(f.selection) == 0 {
		if !confirmEmpty {
			return &ReconcileResult{Outcome: OutcomeNeedsConfirmation, Message: ConfirmEmptyPrompt}, nil
		}
		return &ReconcileResult{Outcome: OutcomeSkipped, Navigate: views.NavigateTo(views.RouteShopping)}, nil
	}

	list, err := f.records.LoadShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	if list.IsEmpty() {
		return nil, ErrNoShoppingList
	}
	if !cmp.Equal(f.snapshot, list.Items) {
		return nil, ErrSelectionStale
	}

	items, removed, reduced := Reconcile(list.Items, f.selection)
	list.Items = items
	list.UpdatedAt = time.Now()

	if err := f.records.SaveShoppingList(ctx, list); err != nil {
		return nil, persistence("save shopping list", err)
	}

	return &ReconcileResult{
		Outcome:  OutcomeApplied,
		Removed:  removed,
		Reduced:  reduced,
		Message:  reconcileSummary(removed, reduced),
		Navigate: views.NavigateTo(views.RouteShopping),
	}, nil
}

// reconcileSummary lists only the counts that are above zero
func reconcileSummary(removed, reduced int) string {
	message := "Kühlschrank-Check abgeschlossen!"
	if removed > 0 {
		message += fmt.Sprintf("\n%d Artikel entfernt.", removed)
	}
	if reduced > 0 {
		message += fmt.Sprintf("\n%d Artikel reduziert.", reduced)
	}
	return message
}

// DefaultFridgeCheckTTL is how long an untouched check stays open
const DefaultFridgeCheckTTL = time.Hour

type openCheck struct {
	check    *FridgeCheck
	lastUsed time.Time
}

// FridgeSessions tracks the open fridge check of each owner. Checks not
// used within the TTL are dropped the next time the registry is touched.
type FridgeSessions struct {
	mu     sync.Mutex
	checks map[string]*openCheck
	ttl    time.Duration
	now    func() time.Time
}

// NewFridgeSessions creates an empty registry. A non-positive ttl uses the default.
func NewFridgeSessions(ttl time.Duration) *FridgeSessions {
	if ttl <= 0 {
		ttl = DefaultFridgeCheckTTL
	}
	return &FridgeSessions{
		checks: make(map[string]*openCheck),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Open starts a new check for owner, replacing any previous one
func (s *FridgeSessions) Open(ctx context.Context, owner string, records Records) (*FridgeCheck, error) {
	check, err := NewFridgeCheck(ctx, records)
	if err != nil {
		s.Discard(owner)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.expire(now)
	s.checks[owner] = &openCheck{check: check, lastUsed: now}
	return check, nil
}

// With runs fn on the owner's open check while holding the registry lock.
// ok is false when no check is open.
func (s *FridgeSessions) With(owner string, fn func(*FridgeCheck) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.expire(now)

	open, ok := s.checks[owner]
	if !ok {
		return false, nil
	}
	open.lastUsed = now
	return true, fn(open.check)
}

// Len returns the number of open checks
func (s *FridgeSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checks)
}

// expire drops stale checks. The caller holds mu.
func (s *FridgeSessions) expire(now time.Time) {
	for owner, open := range s.checks {
		if now.Sub(open.lastUsed) > s.ttl {
			delete(s.checks, owner)
		}
	}
}

// Discard drops the owner's open check
func (s *FridgeSessions) Discard(owner string) {
	s.mu.Lock()
	delete(s.checks, owner)
	s.mu.Unlock()
}
