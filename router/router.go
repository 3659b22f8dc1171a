// Package router decides which screen may be shown for the current session.
package router

import "cedarclub/models"

// Route is a screen path.
type Route string

const (
	Login        Route = "/login"
	Home         Route = "/"
	Reservations Route = "/reservations"
	Lockers      Route = "/lockers"
	Family       Route = "/family"
	Profile      Route = "/profile"
	Payment      Route = "/payment"
	Employee     Route = "/employee"
	Admin        Route = "/admin"
)

var protected = map[Route]bool{
	Home:         true,
	Reservations: true,
	Lockers:      true,
	Family:       true,
	Profile:      true,
	Payment:      true,
	Employee:     true,
	Admin:        true,
}

// Routes lists every known route, public first.
func Routes() []Route {
	return []Route{Login, Home, Reservations, Lockers, Family, Profile, Payment, Employee, Admin}
}

// IsProtected reports whether r requires a session.
func (r Route) IsProtected() bool {
	return protected[r]
}

// Known reports whether r is a registered route.
func (r Route) Known() bool {
	return r == Login || protected[r]
}

// Session is the part of the session store the guard reads.
type Session interface {
	User() (models.User, bool)
	IsAuthenticated() bool
}

// Navigator is how controllers ask for a route change.
type Navigator interface {
	Navigate(r Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

// HomeFor is the landing route for a user.
func HomeFor(u models.User) Route {
	if u.IsEmployee() {
		return Employee
	}
	return Home
}

// Guard resolves requested routes against the session.
type Guard struct {
	session Session
}

func NewGuard(s Session) *Guard {
	return &Guard{session: s}
}

// Resolve returns the route that should actually render. Redirects are not
// errors.
func (g *Guard) Resolve(r Route) Route {
	authed := g.session.IsAuthenticated()
	if !r.Known() {
		if !authed {
			return Login
		}
		u, _ := g.session.User()
		return HomeFor(u)
	}
	if r.IsProtected() && !authed {
		return Login
	}
	return r
}
