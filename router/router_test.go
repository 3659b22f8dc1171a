package router

import (
	"testing"

	"cedarclub/models"
)

type fakeSession struct {
	user *models.User
}

func (f fakeSession) User() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

func (f fakeSession) IsAuthenticated() bool { return f.user != nil }

func TestGuardResolve(t *testing.T) {
	t.Parallel()
	member := &models.User{ID: "u", UserType: models.UserTypeMember}
	staff := &models.User{ID: "s", UserType: models.UserTypeEmployee}

	tests := []struct {
		name string
		user *models.User
		in   Route
		want Route
	}{
		{name: "anonymous login", in: Login, want: Login},
		{name: "anonymous home", in: Home, want: Login},
		{name: "anonymous admin", in: Admin, want: Login},
		{name: "anonymous unknown", in: "/nope", want: Login},
		{name: "member payment", user: member, in: Payment, want: Payment},
		{name: "member unknown", user: member, in: "/nope", want: Home},
		{name: "employee unknown", user: staff, in: "/nope", want: Employee},
		{name: "member login page", user: member, in: Login, want: Login},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewGuard(fakeSession{user: tt.user}).Resolve(tt.in)
			if got != tt.want {
				t.Fatalf("Resolve(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEveryRouteButLoginIsProtected(t *testing.T) {
	t.Parallel()
	for _, r := range Routes() {
		if r.IsProtected() == (r == Login) {
			t.Fatalf("route %s has wrong protection", r)
		}
	}
}
