package models

// StatementLine is one charge on an account statement.
type StatementLine struct {
	ID          string  `bson:"id" json:"id"`
	Description string  `bson:"desc" json:"desc,omitempty"`
	Amount      float64 `bson:"amount" json:"amount"`
	Month       string  `bson:"month,omitempty" json:"month,omitempty"`
	Status      string  `bson:"status,omitempty" json:"status,omitempty"`
	Member      string  `bson:"user,omitempty" json:"user,omitempty"`
}

// Statement is the current balance of a membership.
type Statement struct {
	MembershipID     string          `bson:"membership_id" json:"membership_id"`
	MembershipNumber string          `bson:"membership_number" json:"membership_number"`
	TotalDue         float64         `bson:"total_due" json:"total_due"`
	Maintenance      []StatementLine `bson:"maintenance" json:"maintenance"`
	Services         []StatementLine `bson:"services" json:"services"`
	Lockers          []StatementLine `bson:"lockers" json:"lockers"`
}

// Sum adds up every line on the statement.
func (s Statement) Sum() float64 {
	var total float64
	for _, group := range [][]StatementLine{s.Maintenance, s.Services, s.Lockers} {
		for _, l := range group {
			total += l.Amount
		}
	}
	return total
}

// Maintenance line statuses.
const (
	LineOverdue = "vencido"
	LinePaid    = "pagado"
)
