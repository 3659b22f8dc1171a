package flows

import (
	"context"
	"sync"

	"cedarclub/models"

	"go.uber.org/zap"
)

// FamilyTab is a tab of the family screen.
type FamilyTab string

const (
	TabFamily    FamilyTab = "family"
	TabApprovals FamilyTab = "approvals"
	TabStatement FamilyTab = "statement"
)

// FamilyAPI is the subset of the API client used by the family screen.
type FamilyAPI interface {
	Beneficiaries(ctx context.Context, membershipID string) ([]models.Beneficiary, error)
	Statement(ctx context.Context, membershipID string) (models.Statement, error)
}

// Family shows the membership's beneficiaries and its statement.
type Family struct {
	api     FamilyAPI
	session SessionStore
	logger  *zap.Logger

	mu            sync.Mutex
	tab           FamilyTab
	beneficiaries []models.Beneficiary
	statement     *models.Statement
}

func NewFamily(api FamilyAPI, session SessionStore, logger *zap.Logger) *Family {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Family{api: api, session: session, logger: logger, tab: TabFamily}
}

// Load fetches beneficiaries and statement. Failures are logged and leave
// the affected section empty.
func (f *Family) Load(ctx context.Context) error {
	u, ok := f.session.User()
	if !ok {
		return ErrNotLoggedIn
	}
	if u.MembershipID == "" {
		return ErrNoMembership
	}
	bs, err := f.api.Beneficiaries(ctx, u.MembershipID)
	if err != nil {
		f.logger.Warn("Error fetching family", zap.String("membership", u.MembershipID), zap.Error(err))
		bs = nil
	}
	st, serr := f.api.Statement(ctx, u.MembershipID)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.beneficiaries = bs
	if serr != nil {
		f.logger.Warn("Error fetching statement", zap.String("membership", u.MembershipID), zap.Error(serr))
		f.statement = nil
	} else {
		f.statement = &st
	}
	return nil
}

func (f *Family) SetTab(t FamilyTab) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tab = t
}

func (f *Family) Tab() FamilyTab {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tab
}

func (f *Family) Beneficiaries() []models.Beneficiary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Beneficiary(nil), f.beneficiaries...)
}

func (f *Family) Statement() (models.Statement, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statement == nil {
		return models.Statement{}, false
	}
	return *f.statement, true
}

// CanAddBeneficiary is true only for the membership holder.
func (f *Family) CanAddBeneficiary() bool {
	u, ok := f.session.User()
	return ok && u.Role == models.RoleTitular
}
