package collection

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/log"
	"github.com/keepsake-app/keepsake/internal/store"
)

// LocationTBD is stored when a suggestion is added without a location.
const LocationTBD = "Location TBD"

// DateSuggestion is one place on the wishlist.
type DateSuggestion struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	DateAdded time.Time `json:"dateAdded"`
	Visited   bool      `json:"visited"`
}

// Wishlist is the newest-first list of date suggestions.
type Wishlist struct {
	dates  *store.Collection[DateSuggestion]
	logger *log.Logger
	now    func() time.Time
	newID  func() string
}

// OpenWishlist loads the wishlist from backend.
func OpenWishlist(ctx context.Context, backend store.Backend, logger *log.Logger) *Wishlist {
	return &Wishlist{
		dates:  store.Open[DateSuggestion](ctx, backend, store.KeyDateSuggestions, logger),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Dates returns the suggestions, newest first.
func (w *Wishlist) Dates() []DateSuggestion {
	return w.dates.Items()
}

// Len returns the number of suggestions.
func (w *Wishlist) Len() int {
	return w.dates.Len()
}

// Find returns the suggestion with id.
func (w *Wishlist) Find(id string) (DateSuggestion, bool) {
	for _, d := range w.dates.Items() {
		if d.ID == id {
			return d, true
		}
	}
	return DateSuggestion{}, false
}

// Add inserts a new suggestion at the front. Any role may add. A name that is
// empty after trimming is rejected with ErrEmptyName and nothing changes.
func (w *Wishlist) Add(ctx context.Context, name, location string) (DateSuggestion, error) {
	if strings.TrimSpace(name) == "" {
		return DateSuggestion{}, ErrEmptyName
	}
	if location == "" {
		location = LocationTBD
	}
	d := DateSuggestion{
		ID:        w.newID(),
		Name:      name,
		Location:  location,
		DateAdded: w.now(),
	}
	err := w.dates.Mutate(ctx, func(items []DateSuggestion) []DateSuggestion {
		return append([]DateSuggestion{d}, items...)
	})
	if err != nil {
		return DateSuggestion{}, err
	}
	_ = w.logger.Append(log.LogEvent{Event: log.EventDateAdded, ID: d.ID, Name: d.Name})
	return d, nil
}

// Toggle flips Visited for id. Any role may toggle; an unknown id is a no-op.
func (w *Wishlist) Toggle(ctx context.Context, id string) error {
	if _, ok := w.Find(id); !ok {
		return nil
	}
	err := w.dates.Mutate(ctx, func(items []DateSuggestion) []DateSuggestion {
		for i := range items {
			if items[i].ID == id {
				items[i].Visited = !items[i].Visited
			}
		}
		return items
	})
	if err != nil {
		return err
	}
	_ = w.logger.Append(log.LogEvent{Event: log.EventDateToggled, ID: id})
	return nil
}

// Delete removes the suggestion with id. Only the elevated role may delete;
// an unknown id is a no-op.
func (w *Wishlist) Delete(ctx context.Context, role gate.Role, id string) error {
	if !role.CanDelete() {
		_ = w.logger.Append(log.LogEvent{
			Event: log.EventPermissionDenied,
			Key:   w.dates.Key(),
			Role:  role.String(),
			ID:    id,
		})
		return ErrPermissionDenied
	}
	if _, ok := w.Find(id); !ok {
		return nil
	}
	err := w.dates.Mutate(ctx, func(items []DateSuggestion) []DateSuggestion {
		out := items[:0]
		for _, d := range items {
			if d.ID != id {
				out = append(out, d)
			}
		}
		return out
	})
	if err != nil {
		return err
	}
	_ = w.logger.Append(log.LogEvent{Event: log.EventDateDeleted, ID: id})
	return nil
}
