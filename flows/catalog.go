package flows

import (
	"context"
	"strings"
	"sync"

	"cedarclub/clock"
	"cedarclub/models"

	"go.uber.org/zap"
)

// CatalogAPI is the subset of the API client used by the catalog screen.
type CatalogAPI interface {
	Catalog(ctx context.Context, unit string) ([]models.CatalogItem, error)
	BookingAPI
}

var categoryLabels = map[string]string{
	"deportes":        "Deportes",
	"spa":             "Spa",
	"danza":           "Danza",
	"bienestar":       "Bienestar",
	"acuaticas":       "Acuáticas",
	"artes_marciales": "Artes Marciales",
	"natacion":        "Natación",
	"todos":           "Todos",
}

// CategoryLabel returns the display name of a category key.
func CategoryLabel(key string) string {
	if l, ok := categoryLabels[key]; ok {
		return l
	}
	return key
}

// Catalog lists the bookable items of one unit. Fetch failures are logged
// and render as an empty list.
type Catalog struct {
	api    CatalogAPI
	clock  clock.Clock
	logger *zap.Logger

	mu       sync.Mutex
	unit     string
	category string
	items    []models.CatalogItem
	loading  bool
}

func NewCatalog(api CatalogAPI, clk clock.Clock, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Catalog{api: api, clock: clk, logger: logger, unit: models.UnitHermes, category: models.CategoryAll}
}

// Load fetches the catalog of the active unit.
func (c *Catalog) Load(ctx context.Context) {
	c.mu.Lock()
	unit := c.unit
	c.loading = true
	c.mu.Unlock()

	items, err := c.api.Catalog(ctx, unit)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if unit != c.unit {
		// The unit changed while this fetch was in flight.
		return
	}
	if err != nil {
		c.logger.Warn("Error fetching catalog", zap.String("unit", unit), zap.Error(err))
		c.items = nil
		return
	}
	c.items = items
}

// SetUnit switches unit and refetches.
func (c *Catalog) SetUnit(ctx context.Context, unit string) {
	c.mu.Lock()
	c.unit = unit
	c.mu.Unlock()
	c.Load(ctx)
}

func (c *Catalog) Unit() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unit
}

func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Categories returns "todos" followed by the distinct lower-cased
// categories of the loaded items in first-seen order.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []string{models.CategoryAll}
	seen := map[string]bool{models.CategoryAll: true}
	for _, it := range c.items {
		cat := strings.ToLower(it.Category)
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

func (c *Catalog) SetCategory(cat string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = strings.ToLower(cat)
}

func (c *Catalog) Category() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

// Items returns the loaded items in the active category.
func (c *Catalog) Items() []models.CatalogItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.CatalogItem
	for _, it := range c.items {
		if c.category == models.CategoryAll || strings.ToLower(it.Category) == c.category {
			out = append(out, it)
		}
	}
	return out
}

// Open starts a booking draft for item.
func (c *Catalog) Open(item models.CatalogItem) *Booking {
	return NewBooking(c.api, item, c.clock, c.logger)
}
