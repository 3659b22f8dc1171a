package billing

import (
	"context"
	"errors"
	"fmt"
	"math"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/services/idempotency"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBillingService) Beneficiaries(ctx context.Context, membershipID string) ([]models.Beneficiary, error) {
	if _, err := s.membership(ctx, membershipID); err != nil {
		return nil, err
	}
	profiles, err := s.Repo.ListProfiles(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	out := make([]models.Beneficiary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Beneficiary())
	}
	return out, nil
}

func (s *DefaultBillingService) Statement(ctx context.Context, membershipID string) (*models.Statement, error) {
	m, err := s.membership(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	st, err := s.Repo.GetStatement(ctx, membershipID)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return &models.Statement{
			MembershipID:     m.ID,
			MembershipNumber: m.Number,
			Maintenance:      []models.StatementLine{},
			Services:         []models.StatementLine{},
			Lockers:          []models.StatementLine{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statement: %w", err)
	}
	return st, nil
}

func (s *DefaultBillingService) Checkout(ctx context.Context, userID, membershipID string, req models.CheckoutRequest, key string) (*models.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return idempotency.Do(ctx, s.Idempotency, "checkout:"+membershipID, key, func() (*models.Payment, error) {
		st, err := s.Statement(ctx, membershipID)
		if err != nil {
			return nil, err
		}
		if st.TotalDue <= 0 {
			return nil, ErrNothingDue
		}
		if req.Amount > st.TotalDue {
			return nil, ErrAmountExceedsDue
		}

		p := &models.Payment{
			ID:           uuid.New().String(),
			UserID:       userID,
			MembershipID: membershipID,
			Amount:       req.Amount,
			Currency:     models.DefaultCurrency,
			Status:       models.PaymentPending,
			SourceType:   req.SourceType,
			SourceID:     req.SourceID,
		}
		if err := s.Processor.ProcessPayment(ctx, p, key); err != nil {
			s.Logger.Warn("Payment failed", zap.String("membership", membershipID), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		if err := s.Repo.CreatePayment(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}

		if p.Status == models.PaymentPaid {
			applyPayment(st, p.Amount)
			if err := s.Repo.SaveStatement(ctx, st); err != nil {
				s.Logger.Error("Failed to update statement after payment", zap.String("payment", p.ID), zap.Error(err))
			}
		}
		s.Logger.Info("Payment recorded",
			zap.String("payment", p.ID), zap.Float64("amount", p.Amount), zap.String("status", p.Status))
		return p, nil
	})
}

// applyPayment lowers the balance and, once it is settled, marks overdue
// maintenance lines paid.
func applyPayment(st *models.Statement, amount float64) {
	st.TotalDue = math.Round((st.TotalDue-amount)*100) / 100
	if st.TotalDue > 0 {
		return
	}
	st.TotalDue = 0
	for i := range st.Maintenance {
		if st.Maintenance[i].Status == models.LineOverdue {
			st.Maintenance[i].Status = models.LinePaid
		}
	}
}

func (s *DefaultBillingService) membership(ctx context.Context, id string) (*models.Membership, error) {
	m, err := s.Repo.GetMembership(ctx, id)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	return m, nil
}
