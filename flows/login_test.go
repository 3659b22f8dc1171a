package flows

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cedarclub/client"
	"cedarclub/models"
	"cedarclub/router"
)

func TestSetMemberNumberKeepsDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"31505", "31505"},
		{"31-50 5", "31505"},
		{"abc", ""},
		{"1234567890", "123456"},
	}
	l := NewLogin(&fakeAPI{}, newSession(t), &recorder{}, nil)
	for _, tt := range tests {
		l.SetMemberNumber(tt.in)
		if got := l.MemberNumber(); got != tt.want {
			t.Fatalf("SetMemberNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	l.SetPIN("12a345")
	if l.PIN() != "1234" {
		t.Fatalf("expected PIN 1234, got %q", l.PIN())
	}
}

func TestLookupUnknownMembershipStays(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{name: "server message", err: &client.APIError{Status: http.StatusNotFound, Message: "Socio no encontrado"}, message: "Socio no encontrado"},
		{name: "no message", err: &client.APIError{Status: http.StatusInternalServerError}, message: MsgLookupFailed},
		{name: "network", err: errors.New("dial tcp: refused"), message: MsgLookupFailed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &fakeAPI{selectProfileFn: func(context.Context, string) ([]models.Profile, error) { return nil, tt.err }}
			l := NewLogin(api, newSession(t), &recorder{}, nil)
			_ = l.ChooseMember()
			l.SetMemberNumber("99999")
			if err := l.Lookup(context.Background()); !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if l.Step() != LoginMembership {
				t.Fatalf("expected membership step, got %s", l.Step())
			}
			if l.ErrorMessage() != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, l.ErrorMessage())
			}
			if l.Busy() {
				t.Fatal("expected busy flag to be cleared")
			}
		})
	}
}

func TestLookupEmptyProfiles(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{selectProfileFn: func(context.Context, string) ([]models.Profile, error) { return []models.Profile{}, nil }}
	l := NewLogin(api, newSession(t), &recorder{}, nil)
	_ = l.ChooseMember()
	l.SetMemberNumber("1")
	if err := l.Lookup(context.Background()); !errors.Is(err, ErrNoProfiles) {
		t.Fatalf("expected ErrNoProfiles, got %v", err)
	}
	if l.Step() != LoginMembership {
		t.Fatalf("expected membership step, got %s", l.Step())
	}
}

func TestLookupRequiresNumber(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	l := NewLogin(api, newSession(t), &recorder{}, nil)
	_ = l.ChooseMember()
	if l.CanLookup() {
		t.Fatal("expected CanLookup to be false with empty number")
	}
	var verr *ValidationError
	if err := l.Lookup(context.Background()); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if api.count("select_profile") != 0 {
		t.Fatal("expected no request")
	}
}

func TestAdultLoginNavigatesHome(t *testing.T) {
	t.Parallel()
	adult := models.Profile{ID: "p-1", FirstName: "Andrea", LastName: "Saad", Role: models.RoleTitular}
	var sent models.LoginRequest
	api := &fakeAPI{
		selectProfileFn: func(_ context.Context, number string) ([]models.Profile, error) {
			if number != "31505" {
				t.Errorf("unexpected member number %q", number)
			}
			return []models.Profile{adult}, nil
		},
		loginFn: func(_ context.Context, req models.LoginRequest) (models.LoginResponse, error) {
			sent = req
			return models.LoginResponse{
				User:  &models.User{ID: "p-1", MembershipID: "m-31505", FirstName: "Andrea"},
				Token: "tok-31505",
			}, nil
		},
	}
	sess := newSession(t)
	nav := &recorder{}
	l := NewLogin(api, sess, nav, nil)

	if err := l.ChooseMember(); err != nil {
		t.Fatal(err)
	}
	l.SetMemberNumber("31505")
	if err := l.Lookup(context.Background()); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if l.Step() != LoginProfile || len(l.Profiles()) != 1 {
		t.Fatalf("expected one profile on profile step, got %s %v", l.Step(), l.Profiles())
	}
	if err := l.SelectProfile("p-1"); err != nil {
		t.Fatal(err)
	}
	if l.NeedsPIN() || !l.CanSubmit() {
		t.Fatal("adult profile must not need a PIN")
	}
	if err := l.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if sent.Password != "demo123" || sent.PIN != "" || sent.ProfileID != "p-1" {
		t.Fatalf("unexpected login payload %+v", sent)
	}
	u, ok := sess.User()
	if !ok {
		t.Fatal("expected session user")
	}
	if u.UserType != models.UserTypeMember || u.MembershipID != "m-31505" || u.MemberNumber != "31505" {
		t.Fatalf("unexpected session user %+v", u)
	}
	if u.LastName != "Saad" || u.Role != models.RoleTitular {
		t.Fatalf("expected profile fields to fill gaps, got %+v", u)
	}
	if sess.Token() != "tok-31505" {
		t.Fatalf("unexpected token %q", sess.Token())
	}
	if nav.last() != router.Home {
		t.Fatalf("expected navigation to /, got %q", nav.last())
	}
}

func TestMinorLoginRequiresPIN(t *testing.T) {
	t.Parallel()
	minor := models.Profile{ID: "p-2", FirstName: "Leo", IsMinor: true, Role: "hijo"}
	api := &fakeAPI{
		selectProfileFn: func(context.Context, string) ([]models.Profile, error) { return []models.Profile{minor}, nil },
		loginFn: func(_ context.Context, req models.LoginRequest) (models.LoginResponse, error) {
			if req.PIN != "1234" || req.Password != "" {
				return models.LoginResponse{}, &client.APIError{Status: http.StatusUnauthorized}
			}
			return models.LoginResponse{Token: "tok"}, nil
		},
	}
	sess := newSession(t)
	nav := &recorder{}
	l := NewLogin(api, sess, nav, nil)
	_ = l.ChooseMember()
	l.SetMemberNumber("31505")
	_ = l.Lookup(context.Background())
	_ = l.SelectProfile("p-2")

	l.SetPIN("12")
	if l.CanSubmit() {
		t.Fatal("expected CanSubmit false with 2 digits")
	}
	if err := l.Submit(context.Background()); !errors.Is(err, ErrPINIncomplete) {
		t.Fatalf("expected ErrPINIncomplete, got %v", err)
	}
	if api.count("login") != 0 {
		t.Fatal("expected no login request for incomplete PIN")
	}

	l.SetPIN("9999")
	if err := l.Submit(context.Background()); err == nil {
		t.Fatal("expected wrong PIN to fail")
	}
	if l.Step() != LoginPIN || l.ErrorMessage() != MsgPINFailed || l.PIN() != "9999" {
		t.Fatalf("expected to stay on PIN with fallback message, got %s %q %q", l.Step(), l.ErrorMessage(), l.PIN())
	}

	l.SetPIN("1234")
	if err := l.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	u, _ := sess.User()
	if u.ID != "p-2" || u.FirstName != "Leo" || u.MemberNumber != "31505" {
		t.Fatalf("expected profile identity, got %+v", u)
	}
	if nav.last() != router.Home {
		t.Fatalf("expected navigation home, got %q", nav.last())
	}
}

func TestEmployeeLogin(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{
		staffLoginFn: func(_ context.Context, username, password string) (models.StaffLoginResponse, error) {
			if username != "mgarcia" || password != "secret" {
				return models.StaffLoginResponse{}, &client.APIError{Status: http.StatusUnauthorized}
			}
			return models.StaffLoginResponse{
				Staff: models.Staff{ID: "s-1", Name: "María José García", Role: "terapeuta", UnitName: "Hermes"},
				Token: "staff-tok",
			}, nil
		},
	}
	sess := newSession(t)
	nav := &recorder{}
	l := NewLogin(api, sess, nav, nil)
	if err := l.ChooseEmployee(); err != nil {
		t.Fatal(err)
	}

	l.SetCredentials("mgarcia", "wrong")
	if err := l.SubmitEmployee(context.Background()); err == nil {
		t.Fatal("expected bad credentials to fail")
	}
	if l.ErrorMessage() != MsgCredentialsFailed || l.Step() != LoginEmployee {
		t.Fatalf("unexpected state %s %q", l.Step(), l.ErrorMessage())
	}

	l.SetCredentials(" mgarcia ", "secret")
	if err := l.SubmitEmployee(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	u, _ := sess.User()
	want := models.User{ID: "s-1", Role: "terapeuta", FirstName: "María", LastName: "José García", UserType: models.UserTypeEmployee, UnitName: "Hermes"}
	if u != want {
		t.Fatalf("expected %+v, got %+v", want, u)
	}
	if nav.last() != router.Employee {
		t.Fatalf("expected /employee, got %q", nav.last())
	}
}

func TestLoginBackNavigation(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{selectProfileFn: func(context.Context, string) ([]models.Profile, error) {
		return []models.Profile{{ID: "p", IsMinor: true}}, nil
	}}
	l := NewLogin(api, newSession(t), &recorder{}, nil)
	if err := l.Back(); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected illegal back from lobby, got %v", err)
	}
	_ = l.ChooseMember()
	l.SetMemberNumber("31505")
	_ = l.Lookup(context.Background())
	_ = l.SelectProfile("p")
	l.SetPIN("12")

	if err := l.Back(); err != nil || l.Step() != LoginProfile {
		t.Fatalf("expected profile step, got %s %v", l.Step(), err)
	}
	if l.PIN() != "" || len(l.Profiles()) != 1 {
		t.Fatal("back from PIN must clear only the PIN")
	}
	if err := l.Back(); err != nil || l.Step() != LoginMembership {
		t.Fatalf("expected membership step, got %s %v", l.Step(), err)
	}
	if len(l.Profiles()) != 0 || l.MemberNumber() != "31505" {
		t.Fatal("back from profile must clear the profiles and keep the number")
	}
	if err := l.Back(); err != nil || l.Step() != LoginLobby || l.MemberNumber() != "" {
		t.Fatalf("expected reset lobby, got %s %q", l.Step(), l.MemberNumber())
	}
}

func TestLookupSingleFlight(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{selectProfileFn: func(context.Context, string) ([]models.Profile, error) {
		close(started)
		<-release
		return []models.Profile{{ID: "p"}}, nil
	}}
	l := NewLogin(api, newSession(t), &recorder{}, nil)
	_ = l.ChooseMember()
	l.SetMemberNumber("1")

	done := make(chan error, 1)
	go func() { done <- l.Lookup(context.Background()) }()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("lookup did not start")
	}

	if l.CanLookup() {
		t.Fatal("expected CanLookup false while in flight")
	}
	if err := l.Lookup(context.Background()); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if api.count("select_profile") != 1 {
		t.Fatalf("expected one request, got %d", api.count("select_profile"))
	}
}
