package client

import (
	"context"
	"net/http"
	"net/url"

	"cedarclub/models"
)

// --- Auth ---

// SelectProfile looks up the profiles under a membership number.
func (c *Client) SelectProfile(ctx context.Context, memberNumber string) ([]models.Profile, error) {
	var resp models.SelectProfileResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/select-profile",
		body: models.SelectProfileRequest{MemberNumber: memberNumber}}, &resp)
	return resp.Profiles, err
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: req}, &resp)
	return resp, err
}

func (c *Client) StaffLogin(ctx context.Context, username, password string) (models.StaffLoginResponse, error) {
	var resp models.StaffLoginResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/staff-login",
		body: models.StaffLoginRequest{Username: username, Password: password}}, &resp)
	return resp, err
}

// --- Catalog and bookings ---

func (c *Client) Catalog(ctx context.Context, unit string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := c.do(ctx, request{method: http.MethodGet, path: "/catalog", query: unitQuery(unit)}, &items)
	return items, err
}

func (c *Client) Enroll(ctx context.Context, req models.EnrollmentRequest) (models.Enrollment, error) {
	var e models.Enrollment
	err := c.do(ctx, request{method: http.MethodPost, path: "/enrollments", body: req, headers: c.idempotent(ctx)}, &e)
	return e, err
}

func (c *Client) BookReservation(ctx context.Context, req models.ReservationRequest) (models.Reservation, error) {
	var r models.Reservation
	err := c.do(ctx, request{method: http.MethodPost, path: "/reservations/book", body: req, headers: c.idempotent(ctx)}, &r)
	return r, err
}

func (c *Client) MyReservations(ctx context.Context) ([]models.Reservation, error) {
	var rs []models.Reservation
	err := c.do(ctx, request{method: http.MethodGet, path: "/reservations/user"}, &rs)
	return rs, err
}

// --- Lockers ---

func (c *Client) Lockers(ctx context.Context, unit string) ([]models.Locker, error) {
	var ls []models.Locker
	err := c.do(ctx, request{method: http.MethodGet, path: "/lockers", query: unitQuery(unit)}, &ls)
	return ls, err
}

func (c *Client) MyLockers(ctx context.Context) ([]models.LockerRental, error) {
	var rs []models.LockerRental
	err := c.do(ctx, request{method: http.MethodGet, path: "/lockers/my"}, &rs)
	return rs, err
}

func (c *Client) RentLocker(ctx context.Context, lockerID string) (models.LockerRental, error) {
	var r models.LockerRental
	err := c.do(ctx, request{method: http.MethodPost, path: "/lockers/" + url.PathEscape(lockerID) + "/rent",
		body: struct{}{}}, &r)
	return r, err
}

func (c *Client) ReleaseLocker(ctx context.Context, lockerID string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/lockers/" + url.PathEscape(lockerID) + "/release",
		body: struct{}{}}, nil)
}

// --- Membership and payments ---

func (c *Client) Beneficiaries(ctx context.Context, membershipID string) ([]models.Beneficiary, error) {
	var bs []models.Beneficiary
	err := c.do(ctx, request{method: http.MethodGet, path: "/membership/" + url.PathEscape(membershipID) + "/beneficiaries"}, &bs)
	return bs, err
}

func (c *Client) Statement(ctx context.Context, membershipID string) (models.Statement, error) {
	var s models.Statement
	err := c.do(ctx, request{method: http.MethodGet, path: "/membership/" + url.PathEscape(membershipID) + "/statement"}, &s)
	return s, err
}

func (c *Client) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Payment, error) {
	var p models.Payment
	err := c.do(ctx, request{method: http.MethodPost, path: "/payments/checkout", body: req, headers: c.idempotent(ctx)}, &p)
	return p, err
}

// --- Admin ---

func (c *Client) Staff(ctx context.Context) ([]models.Staff, error) {
	var ss []models.Staff
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/staff"}, &ss)
	return ss, err
}

func (c *Client) CreateStaff(ctx context.Context, req models.NewStaffRequest) (models.Staff, error) {
	var s models.Staff
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/staff", body: req}, &s)
	return s, err
}

func (c *Client) DeactivateStaff(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/admin/staff/" + url.PathEscape(id)}, nil)
}

func (c *Client) Units(ctx context.Context) ([]models.Unit, error) {
	var us []models.Unit
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/units"}, &us)
	return us, err
}

func unitQuery(unit string) url.Values {
	if unit == "" {
		return nil
	}
	return url.Values{"unit_name": {unit}}
}
