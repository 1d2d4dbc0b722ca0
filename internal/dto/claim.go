package dto

import (
	"time"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// CreateClaimRequest captures a new expense claim. Dimensions arrive as the
// human-readable descriptions the user picked; the amount arrives as a string
// and must parse as a positive decimal.
type CreateClaimRequest struct {
	ExpenseDate time.Time `json:"expenseDate" binding:"required"`
	Department  string    `json:"department" binding:"required"`
	Company     string    `json:"company" binding:"required"`
	BudgetItem  string    `json:"budgetItem" binding:"required"`
	Employee    string    `json:"employee" binding:"required"`
	Amount      string    `json:"amount" binding:"required,decimalamount"`
	Description string    `json:"description"`
}

// ListClaimsRequest narrows claim listings. All fields are optional; amounts
// are decimal strings.
type ListClaimsRequest struct {
	DepartmentCode string `form:"departmentCode"`
	CompanyCode    string `form:"companyCode"`
	BudgetItemCode string `form:"budgetItemCode"`
	EmployeeCode   string `form:"employeeCode"`
	MinAmount      string `form:"minAmount" binding:"omitempty,decimalamount"`
	MaxAmount      string `form:"maxAmount" binding:"omitempty,decimalamount"`
}

// ClaimResponse is the API representation of an expense claim.
type ClaimResponse struct {
	ClaimID        int64     `json:"claimID"`
	ExpenseDate    time.Time `json:"expenseDate"`
	DepartmentCode string    `json:"departmentCode"`
	CompanyCode    string    `json:"companyCode"`
	BudgetItemCode string    `json:"budgetItemCode"`
	EmployeeCode   string    `json:"employeeCode"`
	Amount         string    `json:"amount"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
}

// ToClaimResponse converts a domain claim to its API representation.
func ToClaimResponse(claim domain.ExpenseClaim) ClaimResponse {
	return ClaimResponse{
		ClaimID:        claim.ClaimID,
		ExpenseDate:    claim.ExpenseDate,
		DepartmentCode: claim.DepartmentCode,
		CompanyCode:    claim.CompanyCode,
		BudgetItemCode: claim.BudgetItemCode,
		EmployeeCode:   claim.EmployeeCode,
		Amount:         claim.Amount.StringFixed(2),
		Description:    claim.Description,
		Status:         string(claim.Status),
	}
}

// ToClaimResponses converts a slice of domain claims.
func ToClaimResponses(claims []domain.ExpenseClaim) []ClaimResponse {
	responses := make([]ClaimResponse, len(claims))
	for i, claim := range claims {
		responses[i] = ToClaimResponse(claim)
	}
	return responses
}
