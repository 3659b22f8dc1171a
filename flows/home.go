package flows

import (
	"context"
	"sync"

	"cedarclub/clock"
	"cedarclub/models"

	"go.uber.org/zap"
)

// HomeAPI is the subset of the API client used by the home screen.
type HomeAPI interface {
	MyReservations(ctx context.Context) ([]models.Reservation, error)
}

// Home greets the member and lists upcoming reservations.
type Home struct {
	api     HomeAPI
	session SessionStore
	clock   clock.Clock
	logger  *zap.Logger

	mu           sync.Mutex
	reservations []models.Reservation
	loaded       bool
}

func NewHome(api HomeAPI, session SessionStore, clk clock.Clock, logger *zap.Logger) *Home {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Home{api: api, session: session, clock: clk, logger: logger}
}

// Load fetches the member's reservations. Errors render as an empty list.
func (h *Home) Load(ctx context.Context) {
	rs, err := h.api.MyReservations(ctx)
	if err != nil {
		h.logger.Warn("Error fetching reservations", zap.Error(err))
		rs = nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reservations = rs
	h.loaded = true
}

func (h *Home) Reservations() []models.Reservation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.Reservation(nil), h.reservations...)
}

func (h *Home) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded
}

// Greeting depends on the hour of day.
func (h *Home) Greeting() string {
	switch hr := h.clock.Now().Hour(); {
	case hr < 12:
		return "Buenos días"
	case hr < 19:
		return "Buenas tardes"
	default:
		return "Buenas noches"
	}
}

// Name is the member's full name as shown under the greeting.
func (h *Home) Name() string {
	u, _ := h.session.User()
	return u.FullName()
}
