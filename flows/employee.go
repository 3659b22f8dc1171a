package flows

import (
	"context"
	"sync"

	"cedarclub/models"
	"cedarclub/router"
)

// EmployeeTab is a tab of the employee dashboard.
type EmployeeTab string

const (
	TabToday   EmployeeTab = "hoy"
	TabAgenda  EmployeeTab = "agenda"
	TabProfile EmployeeTab = "perfil"
)

// demoAgenda is shown until the backend exposes staff appointments.
var demoAgenda = []models.Appointment{
	{ID: "1", Name: "Masaje Relajante", Client: "Carlos Slim", Time: "09:30", Status: models.AppointmentConfirmed},
	{ID: "2", Name: "Masaje Tejido Profundo", Client: "Ana García", Time: "11:00", Status: models.AppointmentPending},
	{ID: "3", Name: "Corte Clásico", Client: "Roberto Hernández", Time: "15:30", Status: models.AppointmentConfirmed},
	{ID: "4", Name: "Masaje con Piedras", Client: "Sofía Torres", Time: "17:00", Status: models.AppointmentConfirmed},
}

// EmployeeDashboard is the landing screen for staff.
type EmployeeDashboard struct {
	session SessionStore
	nav     router.Navigator

	mu           sync.Mutex
	tab          EmployeeTab
	appointments []models.Appointment
}

func NewEmployeeDashboard(session SessionStore, nav router.Navigator) *EmployeeDashboard {
	return &EmployeeDashboard{
		session:      session,
		nav:          nav,
		tab:          TabToday,
		appointments: append([]models.Appointment(nil), demoAgenda...),
	}
}

func (d *EmployeeDashboard) Appointments() []models.Appointment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Appointment(nil), d.appointments...)
}

// Counts returns how many appointments are confirmed and pending.
func (d *EmployeeDashboard) Counts() (confirmed, pending int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.appointments {
		switch a.Status {
		case models.AppointmentConfirmed:
			confirmed++
		case models.AppointmentPending:
			pending++
		}
	}
	return confirmed, pending
}

func (d *EmployeeDashboard) SetTab(t EmployeeTab) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tab = t
}

func (d *EmployeeDashboard) Tab() EmployeeTab {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tab
}

// Greeting is the header line for the logged in employee.
func (d *EmployeeDashboard) Greeting() string {
	u, _ := d.session.User()
	return "Hola, " + u.FirstName
}

// Logout clears the session and returns to the login screen.
func (d *EmployeeDashboard) Logout(ctx context.Context) error {
	return logout(ctx, d.session, d.nav)
}

func logout(ctx context.Context, s SessionStore, nav router.Navigator) error {
	err := s.Logout(ctx)
	nav.Navigate(router.Login)
	return err
}
