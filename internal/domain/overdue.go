package domain

import "github.com/shopspring/decimal"

// OverdueLoan is the transient result of evaluating one loan against a
// reference date. It is recomputed on every dashboard view and never persisted.
type OverdueLoan struct {
	Loan        Loan            `json:"loan"`
	Borrower    User            `json:"borrower"`
	Book        Book            `json:"book"`
	DaysOverdue int32           `json:"days_overdue"`
	Fine        decimal.Decimal `json:"fine_amount"`
}

// DashboardSummary carries the headline counts shown on the staff dashboard.
type DashboardSummary struct {
	TotalBooks    int64           `json:"total_books"`
	ActiveMembers int64           `json:"active_members"`
	LoansToday    int64           `json:"loans_today"`
	OverdueCount  int64           `json:"overdue_count"`
	FineRevenue   decimal.Decimal `json:"fine_revenue"`
}
