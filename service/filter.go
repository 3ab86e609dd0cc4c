package service

import (
	"strings"
	"sync"
	"time"

	"camelia-boutique/models"

	"github.com/samber/lo"
)

// Debounce delays applied to rapidly-changing inputs before the filter
// recomputes
const (
	SearchDebounce = 400 * time.Millisecond
	PriceDebounce  = 500 * time.Millisecond
)

// ApplyFilter returns the products matching the criteria. Dimensions
// combine with AND; selections inside one dimension combine with OR, and
// an empty selection leaves its dimension unconstrained. The catalog is
// never mutated.
func ApplyFilter(criteria models.FilterCriteria, products []models.Product) []models.Product {
	return lo.Filter(products, func(p models.Product, _ int) bool {
		return matchesText(criteria.SearchText, p) &&
			p.Price >= criteria.PriceMin && p.Price <= criteria.PriceMax &&
			matchesSet(criteria.Categories, p.Category) &&
			matchesSet(criteria.Colors, p.Color) &&
			matchesSizes(criteria.Sizes, p)
	})
}

func matchesText(search string, p models.Product) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func matchesSet(selected map[string]bool, value string) bool {
	if len(selected) == 0 {
		return true
	}
	return selected[value]
}

func matchesSizes(selected map[string]bool, p models.Product) bool {
	if len(selected) == 0 {
		return true
	}
	return lo.SomeBy(p.Sizes, func(s models.SizeStock) bool {
		return selected[s.Label]
	})
}

// Debouncer applies only the last value seen within a fixed window.
// Triggering again before the window elapses cancels the superseded
// pending application.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given delay
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, cancelling any pending call
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
