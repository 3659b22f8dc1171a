package flows

import (
	"context"
	"errors"
	"strings"

	"cedarclub/models"
	"cedarclub/router"

	"go.uber.org/zap"
)

// LoginStep is a screen of the login wizard.
type LoginStep string

const (
	LoginLobby      LoginStep = "lobby"
	LoginMembership LoginStep = "membership"
	LoginProfile    LoginStep = "profile"
	LoginPIN        LoginStep = "pin"
	LoginEmployee   LoginStep = "employee"
)

const (
	memberNumberLen = 6
	pinLen          = 4

	// adultPassword stands in for biometric confirmation of adult profiles.
	adultPassword = "demo123"
)

// Fallback messages shown when the server sends no error text.
const (
	MsgLookupFailed      = "Error buscando socio"
	MsgPINFailed         = "PIN incorrecto"
	MsgCredentialsFailed = "Credenciales incorrectas"
	MsgNoProfiles        = "No se encontraron perfiles para este número de socio"
)

var (
	ErrNoProfiles           = errors.New("membership has no profiles")
	ErrMemberNumberRequired = errors.New("member number is required")
	ErrPINIncomplete        = errors.New("PIN must have 4 digits")
	ErrCredentialsRequired  = errors.New("username and password are required")
	ErrUnknownProfile       = errors.New("profile is not in the lookup result")
)

const (
	actChooseMember   = "choose_member"
	actChooseEmployee = "choose_employee"
	actLookup         = "lookup"
	actSelectProfile  = "select_profile"
	actSubmit         = "submit"
	actSubmitEmployee = "submit_employee"
	actBack           = "back"
)

var loginTransitions = transitions[LoginStep]{
	actChooseMember:   {LoginLobby},
	actChooseEmployee: {LoginLobby},
	actLookup:         {LoginMembership},
	actSelectProfile:  {LoginProfile},
	actSubmit:         {LoginPIN},
	actSubmitEmployee: {LoginEmployee},
	actBack:           {LoginMembership, LoginProfile, LoginPIN, LoginEmployee},
}

// LoginAPI is the subset of the API client used by the login wizard.
type LoginAPI interface {
	SelectProfile(ctx context.Context, memberNumber string) ([]models.Profile, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	StaffLogin(ctx context.Context, username, password string) (models.StaffLoginResponse, error)
}

// Login drives member and employee sign-in.
type Login struct {
	wizard[LoginStep]

	api     LoginAPI
	session SessionStore
	nav     router.Navigator
	logger  *zap.Logger

	memberNumber string
	profiles     []models.Profile
	selected     *models.Profile
	pin          string
	username     string
	password     string
}

func NewLogin(api LoginAPI, session SessionStore, nav router.Navigator, logger *zap.Logger) *Login {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Login{
		wizard:  wizard[LoginStep]{step: LoginLobby, table: loginTransitions},
		api:     api,
		session: session,
		nav:     nav,
		logger:  logger,
	}
}

// --- Lobby ---

func (l *Login) ChooseMember() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(actChooseMember, LoginMembership)
}

func (l *Login) ChooseEmployee() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(actChooseEmployee, LoginEmployee)
}

// --- Membership lookup ---

// SetMemberNumber keeps only digits, up to six.
func (l *Login) SetMemberNumber(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.memberNumber = digits(s, memberNumberLen)
}

func (l *Login) MemberNumber() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.memberNumber
}

func (l *Login) CanLookup() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.step == LoginMembership && l.memberNumber != "" && !l.busy
}

// Lookup fetches the profiles under the entered member number and moves to
// profile selection. On failure the wizard stays on the membership step.
func (l *Login) Lookup(ctx context.Context) error {
	l.mu.Lock()
	if err := l.acquire(actLookup); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.memberNumber == "" {
		l.busy = false
		l.mu.Unlock()
		return invalid("member_number", ErrMemberNumberRequired)
	}
	number := l.memberNumber
	l.mu.Unlock()

	profiles, err := l.api.SelectProfile(ctx, number)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = false
	if err != nil {
		l.logger.Warn("Membership lookup failed", zap.String("member_number", number), zap.Error(err))
		l.fail(err, MsgLookupFailed)
		return err
	}
	if len(profiles) == 0 {
		l.fail(ErrNoProfiles, MsgNoProfiles)
		return ErrNoProfiles
	}
	l.profiles = profiles
	l.selected = nil
	l.step = LoginProfile
	return nil
}

// --- Profile and PIN ---

func (l *Login) Profiles() []models.Profile {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Profile(nil), l.profiles...)
}

func (l *Login) SelectProfile(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.check(actSelectProfile); err != nil {
		return err
	}
	for i := range l.profiles {
		if l.profiles[i].ID == id {
			p := l.profiles[i]
			l.selected = &p
			l.pin = ""
			l.clearErr()
			l.step = LoginPIN
			return nil
		}
	}
	return invalid("profile_id", ErrUnknownProfile)
}

// Selected returns the chosen profile.
func (l *Login) Selected() (models.Profile, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		return models.Profile{}, false
	}
	return *l.selected, true
}

// NeedsPIN reports whether the selected profile logs in with a PIN.
func (l *Login) NeedsPIN() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected != nil && l.selected.IsMinor
}

// SetPIN keeps only digits, up to four.
func (l *Login) SetPIN(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pin = digits(s, pinLen)
}

func (l *Login) PIN() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pin
}

func (l *Login) CanSubmit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.step == LoginPIN && !l.busy && l.pinReady()
}

func (l *Login) pinReady() bool {
	if l.selected == nil {
		return false
	}
	return !l.selected.IsMinor || len(l.pin) == pinLen
}

// Submit logs the selected profile in and navigates home. On failure the
// wizard stays on the PIN step with the PIN still editable.
func (l *Login) Submit(ctx context.Context) error {
	l.mu.Lock()
	if err := l.acquire(actSubmit); err != nil {
		l.mu.Unlock()
		return err
	}
	if !l.pinReady() {
		l.busy = false
		l.mu.Unlock()
		return invalid("pin", ErrPINIncomplete)
	}
	profile := *l.selected
	number := l.memberNumber
	req := models.LoginRequest{ProfileID: profile.ID}
	if profile.IsMinor {
		req.PIN = l.pin
	} else {
		req.Password = adultPassword
	}
	l.mu.Unlock()

	resp, err := l.api.Login(ctx, req)
	if err == nil {
		err = l.session.Login(ctx, memberUser(resp.User, profile, number), resp.Token)
	}

	l.mu.Lock()
	l.busy = false
	if err != nil {
		l.logger.Warn("Member login failed", zap.String("profile_id", profile.ID), zap.Error(err))
		l.fail(err, MsgPINFailed)
		l.mu.Unlock()
		return err
	}
	l.reset()
	l.mu.Unlock()

	l.nav.Navigate(router.Home)
	return nil
}

// memberUser merges the server's user with the selected profile. Server
// fields win; the profile fills the gaps.
func memberUser(server *models.User, p models.Profile, number string) models.User {
	u := models.User{
		ID:           p.ID,
		MemberNumber: models.MemberNumber(number),
		Role:         p.Role,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
	}
	if server != nil {
		u.ID = firstNonEmpty(server.ID, u.ID)
		u.MembershipID = server.MembershipID
		u.MemberNumber = models.MemberNumber(firstNonEmpty(string(server.MemberNumber), number))
		u.Role = firstNonEmpty(server.Role, u.Role)
		u.FirstName = firstNonEmpty(server.FirstName, u.FirstName)
		u.LastName = firstNonEmpty(server.LastName, u.LastName)
	}
	u.UserType = models.UserTypeMember
	return u
}

// --- Employee ---

func (l *Login) SetCredentials(username, password string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.username = strings.TrimSpace(username)
	l.password = password
}

func (l *Login) CanSubmitEmployee() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.step == LoginEmployee && !l.busy && l.username != "" && l.password != ""
}

// SubmitEmployee logs a staff member in and navigates to the employee
// dashboard.
func (l *Login) SubmitEmployee(ctx context.Context) error {
	l.mu.Lock()
	if err := l.acquire(actSubmitEmployee); err != nil {
		l.mu.Unlock()
		return err
	}
	if l.username == "" || l.password == "" {
		l.busy = false
		l.mu.Unlock()
		return invalid("credentials", ErrCredentialsRequired)
	}
	username, password := l.username, l.password
	l.mu.Unlock()

	resp, err := l.api.StaffLogin(ctx, username, password)
	if err == nil {
		err = l.session.Login(ctx, employeeUser(resp.Staff), resp.Token)
	}

	l.mu.Lock()
	l.busy = false
	if err != nil {
		l.logger.Warn("Staff login failed", zap.String("username", username), zap.Error(err))
		l.fail(err, MsgCredentialsFailed)
		l.mu.Unlock()
		return err
	}
	l.reset()
	l.mu.Unlock()

	l.nav.Navigate(router.Employee)
	return nil
}

func employeeUser(s models.Staff) models.User {
	first, last := models.SplitName(s.Name)
	unit := s.UnitName
	if unit == "" && s.Unit != nil {
		unit = s.Unit.Name
	}
	return models.User{
		ID:        s.ID,
		Role:      s.Role,
		FirstName: first,
		LastName:  last,
		UserType:  models.UserTypeEmployee,
		UnitName:  unit,
	}
}

// --- Back navigation ---

// Back returns to the previous step. Going back from the PIN step only
// clears the PIN; going back from profile selection drops the lookup
// result; going back to the lobby resets everything.
func (l *Login) Back() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return ErrInFlight
	}
	if err := l.check(actBack); err != nil {
		return err
	}
	switch l.step {
	case LoginPIN:
		l.pin = ""
		l.clearErr()
		l.step = LoginProfile
	case LoginProfile:
		l.profiles = nil
		l.selected = nil
		l.clearErr()
		l.step = LoginMembership
	default:
		l.reset()
	}
	return nil
}

func (l *Login) reset() {
	l.step = LoginLobby
	l.memberNumber = ""
	l.profiles = nil
	l.selected = nil
	l.pin = ""
	l.username = ""
	l.password = ""
	l.clearErr()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
