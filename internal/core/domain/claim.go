package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus indicates where an expense claim is in its bookkeeping lifecycle.
type ClaimStatus string

const (
	ClaimPending ClaimStatus = "pending"
	ClaimBooked  ClaimStatus = "booked"
)

// ExpenseClaim is a single reimbursement request captured against the
// master-data dimensions. Claims are created in pending state and move to
// booked only as part of a successful voucher save; the transition is never
// reversed here.
type ExpenseClaim struct {
	ClaimID        int64           `json:"claimID"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	DepartmentCode string          `json:"departmentCode"`
	CompanyCode    string          `json:"companyCode"`
	BudgetItemCode string          `json:"budgetItemCode"`
	EmployeeCode   string          `json:"employeeCode"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Status         ClaimStatus     `json:"status"`
	AuditFields
}

// Validate checks the claim's standing invariants.
func (c ExpenseClaim) Validate() error {
	if c.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("claim amount must be positive, got %s", c.Amount.String())
	}
	if c.DepartmentCode == "" || c.CompanyCode == "" || c.BudgetItemCode == "" || c.EmployeeCode == "" {
		return fmt.Errorf("claim is missing a dimension code")
	}
	return nil
}
