package flows

import (
	"context"
	"fmt"
	"sync"

	"cedarclub/models"

	"go.uber.org/zap"
)

// StaffAPI is the subset of the API client used by the admin screen.
type StaffAPI interface {
	Staff(ctx context.Context) ([]models.Staff, error)
	Units(ctx context.Context) ([]models.Unit, error)
	CreateStaff(ctx context.Context, req models.NewStaffRequest) (models.Staff, error)
	DeactivateStaff(ctx context.Context, id string) error
}

// DeactivatePrompt is asked before a staff member is deactivated.
func DeactivatePrompt(name string) string {
	return fmt.Sprintf("¿Estás seguro de desactivar a %s?", name)
}

// StaffRegistry lists, registers and deactivates staff.
type StaffRegistry struct {
	api    StaffAPI
	logger *zap.Logger

	mu       sync.Mutex
	staff    []models.Staff
	units    []models.Unit
	form     models.NewStaffRequest
	formOpen bool
	busy     bool
}

func NewStaffRegistry(api StaffAPI, logger *zap.Logger) *StaffRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &StaffRegistry{api: api, logger: logger}
	r.form = r.blankForm()
	return r
}

// Caller holds mu.
func (r *StaffRegistry) blankForm() models.NewStaffRequest {
	f := models.NewStaffRequest{Role: models.StaffRoleInstructor, EmploymentType: models.EmploymentPlanta}
	if len(r.units) > 0 {
		f.UnitID = r.units[0].ID
	}
	return f
}

// Load fetches staff and units. The form's unit defaults to the first unit.
func (r *StaffRegistry) Load(ctx context.Context) error {
	staff, err := r.api.Staff(ctx)
	if err != nil {
		r.logger.Warn("Error fetching staff", zap.Error(err))
		return err
	}
	units, err := r.api.Units(ctx)
	if err != nil {
		r.logger.Warn("Error fetching units", zap.Error(err))
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff = staff
	r.units = units
	if r.form.UnitID == "" && len(units) > 0 {
		r.form.UnitID = units[0].ID
	}
	return nil
}

func (r *StaffRegistry) Staff() []models.Staff {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Staff(nil), r.staff...)
}

func (r *StaffRegistry) Units() []models.Unit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Unit(nil), r.units...)
}

func (r *StaffRegistry) OpenForm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formOpen = true
}

func (r *StaffRegistry) CloseForm() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formOpen = false
}

func (r *StaffRegistry) FormOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.formOpen
}

// Form returns the current form values, defaults included.
func (r *StaffRegistry) Form() models.NewStaffRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

// Register submits the form. On success the form is closed, reset and the
// list refetched.
func (r *StaffRegistry) Register(ctx context.Context, form models.NewStaffRequest) error {
	if err := form.Validate(); err != nil {
		return invalid("staff", err)
	}
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return ErrInFlight
	}
	r.busy = true
	r.form = form
	r.mu.Unlock()

	_, err := r.api.CreateStaff(ctx, form)

	r.mu.Lock()
	r.busy = false
	if err != nil {
		r.mu.Unlock()
		r.logger.Warn("Staff registration failed", zap.String("name", form.Name), zap.Error(err))
		return err
	}
	r.formOpen = false
	r.form = r.blankForm()
	r.mu.Unlock()

	if err := r.Load(ctx); err != nil {
		r.logger.Warn("Refetch after registration failed", zap.Error(err))
	}
	return nil
}

// Deactivate asks for confirmation and deactivates an active staff member.
// It reports whether the deactivation happened.
func (r *StaffRegistry) Deactivate(ctx context.Context, id string, confirmer Confirmer) (bool, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return false, ErrInFlight
	}
	var target *models.Staff
	for i := range r.staff {
		if r.staff[i].ID == id {
			s := r.staff[i]
			target = &s
			break
		}
	}
	if target == nil || !target.IsActive {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: staff %s is not active", ErrIllegalTransition, id)
	}
	r.busy = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	if !confirmer.Confirm(ctx, DeactivatePrompt(target.Name)) {
		return false, nil
	}
	if err := r.api.DeactivateStaff(ctx, id); err != nil {
		r.logger.Warn("Staff deactivation failed", zap.String("staff", id), zap.Error(err))
		return false, err
	}
	if err := r.Load(ctx); err != nil {
		r.logger.Warn("Refetch after deactivation failed", zap.Error(err))
	}
	return true, nil
}
