package flows

import "testing"

func TestLoginTransitions(t *testing.T) {
	cases := []struct {
		action string
		from   LoginStep
		valid  bool
	}{
		{actChooseMember, LoginLobby, true},
		{actChooseMember, LoginEmployee, false},
		{actChooseEmployee, LoginLobby, true},
		{actLookup, LoginMembership, true},
		{actLookup, LoginProfile, false},
		{actSelectProfile, LoginProfile, true},
		{actSelectProfile, LoginPIN, false},
		{actSubmit, LoginPIN, true},
		{actSubmit, LoginProfile, false},
		{actSubmitEmployee, LoginEmployee, true},
		{actSubmitEmployee, LoginPIN, false},
		{actBack, LoginPIN, true},
		{actBack, LoginLobby, false},
		{"unknown", LoginLobby, false},
	}
	for _, tt := range cases {
		if got := loginTransitions.valid(tt.action, tt.from); got != tt.valid {
			t.Fatalf("login valid(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		action string
		from   BookingStep
		valid  bool
	}{
		{actContinue, BookingDetails, true},
		{actContinue, BookingConfirm, false},
		{actConfirm, BookingConfirm, true},
		{actConfirm, BookingDetails, false},
		{actBack, BookingConfirm, true},
		{actBack, BookingSuccess, false},
		{actDismiss, BookingSuccess, true},
		{actDismiss, BookingConfirm, false},
		{actClose, BookingDetails, true},
		{actClose, BookingClosed, false},
	}
	for _, tt := range cases {
		if got := bookingTransitions.valid(tt.action, tt.from); got != tt.valid {
			t.Fatalf("booking valid(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestLockerAndPaymentTransitions(t *testing.T) {
	if !lockerTransitions.valid(actSelect, LockerList) || lockerTransitions.valid(actSelect, LockerDetails) {
		t.Fatal("select must only be allowed from the list")
	}
	if !lockerTransitions.valid(actRent, LockerDetails) || lockerTransitions.valid(actRent, LockerSuccess) {
		t.Fatal("rent must only be allowed from details")
	}
	if !lockerTransitions.valid(actDone, LockerSuccess) {
		t.Fatal("done must be allowed from success")
	}
	if !paymentTransitions.valid(actCheckout, PaymentSummary) || paymentTransitions.valid(actCheckout, PaymentProcessing) {
		t.Fatal("checkout must only be allowed from the summary")
	}
}
