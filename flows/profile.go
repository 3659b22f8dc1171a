package flows

import (
	"context"
	"strings"

	"cedarclub/models"
	"cedarclub/router"
)

// Profile shows the session identity.
type Profile struct {
	session SessionStore
	nav     router.Navigator
}

func NewProfile(session SessionStore, nav router.Navigator) *Profile {
	return &Profile{session: session, nav: nav}
}

// ProfileSummary is the identity card of the profile screen.
type ProfileSummary struct {
	FullName     string
	Initials     string
	MemberNumber string
	Role         string
	UnitName     string
	Employee     bool
}

func (p *Profile) Summary() (ProfileSummary, bool) {
	u, ok := p.session.User()
	if !ok {
		return ProfileSummary{}, false
	}
	return ProfileSummary{
		FullName:     u.FullName(),
		Initials:     u.Initials(),
		MemberNumber: u.MemberNumber.String(),
		Role:         u.Role,
		UnitName:     u.UnitName,
		Employee:     u.IsEmployee(),
	}, true
}

// Tier is the label on the membership card.
func Tier(u models.User) string {
	if u.Role == models.RoleTitular {
		return "PLATINO"
	}
	return strings.ToUpper(u.Role)
}

// Logout clears the session and returns to the login screen.
func (p *Profile) Logout(ctx context.Context) error {
	return logout(ctx, p.session, p.nav)
}
