package dto

import (
	"time"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// ListEntriesRequest narrows ledger queries. All fields are optional; amounts
// are decimal strings matched against either side of a line.
type ListEntriesRequest struct {
	VoucherNo   int64      `form:"voucherNo"`
	AccountCode string     `form:"accountCode"`
	Employee    string     `form:"employee"`
	MinAmount   string     `form:"minAmount" binding:"omitempty,decimalamount"`
	MaxAmount   string     `form:"maxAmount" binding:"omitempty,decimalamount"`
	BookedFrom  *time.Time `form:"bookedFrom" time_format:"2006-01-02"`
	BookedTo    *time.Time `form:"bookedTo" time_format:"2006-01-02"`
}

// EntryResponse is the API representation of one booked journal line.
type EntryResponse struct {
	LineID         int64     `json:"lineID"`
	VoucherNo      int64     `json:"voucherNo"`
	LineType       string    `json:"lineType"`
	BookingDate    time.Time `json:"bookingDate"`
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

// VoucherResponse is a voucher with its lines and totals.
type VoucherResponse struct {
	VoucherNo   int64           `json:"voucherNo"`
	TotalDebit  string          `json:"totalDebit"`
	TotalCredit string          `json:"totalCredit"`
	Lines       []EntryResponse `json:"lines"`
}

// ToEntryResponse converts a domain journal line.
func ToEntryResponse(line domain.JournalLine) EntryResponse {
	return EntryResponse{
		LineID:         line.LineID,
		VoucherNo:      line.VoucherNo,
		LineType:       string(line.LineType),
		BookingDate:    line.BookingDate,
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

// ToEntryResponses converts a slice of domain journal lines.
func ToEntryResponses(lines []domain.JournalLine) []EntryResponse {
	responses := make([]EntryResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToEntryResponse(line)
	}
	return responses
}

// ToVoucherResponse converts a domain voucher.
func ToVoucherResponse(voucher domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherNo:   voucher.VoucherNo,
		TotalDebit:  voucher.TotalDebit().StringFixed(2),
		TotalCredit: voucher.TotalCredit().StringFixed(2),
		Lines:       ToEntryResponses(voucher.Lines),
	}
}
