package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineType indicates whether a journal line records on the debit or credit side.
type LineType string

const (
	Debit  LineType = "debit"
	Credit LineType = "credit"
)

// JournalLine is one line of a booked voucher. Exactly one of DebitAmount and
// CreditAmount is non-zero. Debit lines trace back to the expense claim that
// seeded them; credit lines added during drafting have no source claim.
type JournalLine struct {
	LineID         int64           `json:"lineID"`
	VoucherNo      int64           `json:"voucherNo"`
	LineType       LineType        `json:"lineType"`
	AccountCode    string          `json:"accountCode"`
	AccountDesc    string          `json:"accountDesc"`
	CostCenterCode string          `json:"costCenterCode"`
	CostCenterDesc string          `json:"costCenterDesc"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	EmployeeCode   string          `json:"employeeCode"`
	EmployeeDesc   string          `json:"employeeDesc"`
	VoucherDate    time.Time       `json:"voucherDate"`
	PostDate       time.Time       `json:"postDate"`
	BookingDate    time.Time       `json:"bookingDate"`
	SourceClaimID  *int64          `json:"sourceClaimID,omitempty"`
	AuditFields
}

// Amount returns the line's monetary value regardless of side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.LineType == Debit {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// Voucher is a balanced, immutable group of journal lines sharing one voucher
// number. It exists only as a read model; vouchers are created whole at save
// time and never updated.
type Voucher struct {
	VoucherNo int64         `json:"voucherNo"`
	Lines     []JournalLine `json:"lines"`
}

// TotalDebit sums the debit side of the voucher.
func (v Voucher) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredit sums the credit side of the voucher.
func (v Voucher) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}
