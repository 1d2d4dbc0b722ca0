package dto

import (
	"time"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// SelectClaimsRequest starts (or rebuilds) a draft from the chosen claims.
type SelectClaimsRequest struct {
	ClaimIDs []int64 `json:"claimIDs" binding:"required,min=1"`
}

// SetLineTypeRequest flips one draft line between debit and credit.
type SetLineTypeRequest struct {
	LineType string `json:"lineType" binding:"required,oneof=debit credit"`
}

// EditLineRequest applies a partial edit to one draft line. Nil fields are
// left untouched; the amount is a decimal string applied to the line's
// current side.
type EditLineRequest struct {
	AccountCode    *string    `json:"accountCode"`
	AccountDesc    *string    `json:"accountDesc"`
	CostCenterCode *string    `json:"costCenterCode"`
	CostCenterDesc *string    `json:"costCenterDesc"`
	EmployeeCode   *string    `json:"employeeCode"`
	EmployeeDesc   *string    `json:"employeeDesc"`
	Amount         *string    `json:"amount" binding:"omitempty,decimalamount"`
	VoucherDate    *time.Time `json:"voucherDate"`
	PostDate       *time.Time `json:"postDate"`
}

// ToLineEdit converts the request to the domain edit.
func (r EditLineRequest) ToLineEdit() domain.LineEdit {
	return domain.LineEdit{
		AccountCode:    r.AccountCode,
		AccountDesc:    r.AccountDesc,
		CostCenterCode: r.CostCenterCode,
		CostCenterDesc: r.CostCenterDesc,
		EmployeeCode:   r.EmployeeCode,
		EmployeeDesc:   r.EmployeeDesc,
		Amount:         r.Amount,
		VoucherDate:    r.VoucherDate,
		PostDate:       r.PostDate,
	}
}

// DraftLineResponse is the API representation of one draft or booked line.
type DraftLineResponse struct {
	LineType       string    `json:"lineType"`
	AccountCode    string    `json:"accountCode"`
	AccountDesc    string    `json:"accountDesc"`
	CostCenterCode string    `json:"costCenterCode"`
	CostCenterDesc string    `json:"costCenterDesc"`
	DebitAmount    string    `json:"debitAmount"`
	CreditAmount   string    `json:"creditAmount"`
	EmployeeCode   string    `json:"employeeCode"`
	EmployeeDesc   string    `json:"employeeDesc"`
	VoucherDate    time.Time `json:"voucherDate"`
	PostDate       time.Time `json:"postDate"`
	SourceClaimID  *int64    `json:"sourceClaimID,omitempty"`
}

// DraftSessionResponse is the API representation of the booking session.
type DraftSessionResponse struct {
	State            string              `json:"state"`
	SelectedClaimIDs []int64             `json:"selectedClaimIDs,omitempty"`
	Lines            []DraftLineResponse `json:"lines,omitempty"`
	TotalDebit       string              `json:"totalDebit"`
	TotalCredit      string              `json:"totalCredit"`
	VoucherNo        int64               `json:"voucherNo,omitempty"`
}

// SaveVoucherResponse reports the allocated voucher number.
type SaveVoucherResponse struct {
	VoucherNo int64 `json:"voucherNo"`
}

// ToDraftSessionResponse converts a domain draft session.
func ToDraftSessionResponse(session *domain.DraftSession) DraftSessionResponse {
	lines := make([]DraftLineResponse, len(session.Lines))
	for i, line := range session.Lines {
		lines[i] = DraftLineResponse{
			LineType:       string(line.LineType),
			AccountCode:    line.AccountCode,
			AccountDesc:    line.AccountDesc,
			CostCenterCode: line.CostCenterCode,
			CostCenterDesc: line.CostCenterDesc,
			DebitAmount:    line.DebitAmount.StringFixed(2),
			CreditAmount:   line.CreditAmount.StringFixed(2),
			EmployeeCode:   line.EmployeeCode,
			EmployeeDesc:   line.EmployeeDesc,
			VoucherDate:    line.VoucherDate,
			PostDate:       line.PostDate,
			SourceClaimID:  line.SourceClaimID,
		}
	}
	return DraftSessionResponse{
		State:            string(session.State),
		SelectedClaimIDs: session.SelectedClaimIDs,
		Lines:            lines,
		TotalDebit:       session.TotalDebit().StringFixed(2),
		TotalCredit:      session.TotalCredit().StringFixed(2),
		VoucherNo:        session.VoucherNo,
	}
}
