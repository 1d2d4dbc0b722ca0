package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
)

// BookingState is the workflow state of a draft booking session.
type BookingState string

const (
	StateSelecting BookingState = "SELECTING"
	StateDrafting  BookingState = "DRAFTING"
	StateConfirmed BookingState = "CONFIRMED"
)

// DraftSession is the mutable working set of journal lines being edited
// before a voucher save. It is an explicit value object owned by the workflow
// caller; nothing here touches storage. The first len(SelectedClaimIDs) lines
// are the seeded debit lines and correspond 1:1 to the selected claims.
type DraftSession struct {
	State            BookingState  `json:"state"`
	SelectedClaimIDs []int64       `json:"selectedClaimIDs"`
	Lines            []JournalLine `json:"lines"`
	VoucherNo        int64         `json:"voucherNo,omitempty"` // set once confirmed
}

// LineEdit carries a partial edit to one draft line. Nil fields are left
// untouched. Amount applies to the line's current side and must parse as a
// non-negative decimal.
type LineEdit struct {
	AccountCode    *string
	AccountDesc    *string
	CostCenterCode *string
	CostCenterDesc *string
	EmployeeCode   *string
	EmployeeDesc   *string
	Amount         *string
	VoucherDate    *time.Time
	PostDate       *time.Time
}

// NewDraftSession returns a session ready to select claims.
func NewDraftSession() *DraftSession {
	return &DraftSession{State: StateSelecting}
}

// SameSelection reports whether claimIDs names the same claim set as the
// current selection, regardless of order. An unchanged selection must not
// discard edits.
func (d *DraftSession) SameSelection(claimIDs []int64) bool {
	if d.State != StateDrafting || len(claimIDs) != len(d.SelectedClaimIDs) {
		return false
	}
	current := make(map[int64]struct{}, len(d.SelectedClaimIDs))
	for _, id := range d.SelectedClaimIDs {
		current[id] = struct{}{}
	}
	for _, id := range claimIDs {
		if _, ok := current[id]; !ok {
			return false
		}
	}
	return true
}

// StartDrafting replaces the session contents with a freshly seeded line set,
// one debit line per selected claim. Valid from Selecting (first selection)
// and Drafting (re-selection discards edits); a confirmed session must be
// acknowledged first.
func (d *DraftSession) StartDrafting(claimIDs []int64, seeded []JournalLine) error {
	if d.State == StateConfirmed {
		return fmt.Errorf("%w: acknowledge the confirmed voucher before selecting claims", apperrors.ErrInvalidOperation)
	}
	if len(claimIDs) == 0 {
		return fmt.Errorf("%w: at least one claim must be selected", apperrors.ErrValidation)
	}
	if len(seeded) != len(claimIDs) {
		return fmt.Errorf("%w: expected %d seeded lines, got %d", apperrors.ErrValidation, len(claimIDs), len(seeded))
	}
	for i, line := range seeded {
		if line.LineType != Debit || line.SourceClaimID == nil {
			return fmt.Errorf("%w: seeded line %d must be a debit line with a source claim", apperrors.ErrValidation, i)
		}
	}
	d.SelectedClaimIDs = append([]int64(nil), claimIDs...)
	d.Lines = append([]JournalLine(nil), seeded...)
	d.State = StateDrafting
	d.VoucherNo = 0
	return nil
}

// SeededLineCount is the number of debit lines seeded from the selection.
func (d *DraftSession) SeededLineCount() int {
	return len(d.SelectedClaimIDs)
}

// SetLineType flips a line between debit and credit. The amount moves to the
// new side and the opposing side is zeroed, so a line is never both.
func (d *DraftSession) SetLineType(i int, lineType LineType) error {
	if err := d.editable(i); err != nil {
		return err
	}
	if lineType != Debit && lineType != Credit {
		return fmt.Errorf("%w: unknown line type %q", apperrors.ErrValidation, lineType)
	}
	line := &d.Lines[i]
	if line.LineType == lineType {
		return nil
	}
	amount := line.Amount()
	line.LineType = lineType
	if lineType == Debit {
		line.DebitAmount = amount
		line.CreditAmount = decimal.Zero
	} else {
		line.CreditAmount = amount
		line.DebitAmount = decimal.Zero
	}
	return nil
}

// AppendCreditLine adds an empty manual credit line. There is no upper bound
// on the number of credit lines.
func (d *DraftSession) AppendCreditLine(today time.Time) error {
	if d.State != StateDrafting {
		return fmt.Errorf("%w: session is not in drafting state", apperrors.ErrInvalidOperation)
	}
	d.Lines = append(d.Lines, JournalLine{
		LineType:     Credit,
		DebitAmount:  decimal.Zero,
		CreditAmount: decimal.Zero,
		VoucherDate:  today,
		PostDate:     today,
	})
	return nil
}

// RemoveLine removes an appended credit line. The seeded debit lines are
// immutable in count and cannot be removed.
func (d *DraftSession) RemoveLine(i int) error {
	if err := d.editable(i); err != nil {
		return err
	}
	if i < d.SeededLineCount() {
		return fmt.Errorf("%w: line %d was seeded from a selected claim and cannot be removed", apperrors.ErrInvalidOperation, i)
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	return nil
}

// EditLine applies a partial field edit to one line.
func (d *DraftSession) EditLine(i int, edit LineEdit) error {
	if err := d.editable(i); err != nil {
		return err
	}
	var amount *decimal.Decimal
	if edit.Amount != nil {
		parsed, err := decimal.NewFromString(*edit.Amount)
		if err != nil {
			return fmt.Errorf("%w: amount %q is not a valid decimal", apperrors.ErrValidation, *edit.Amount)
		}
		if parsed.IsNegative() {
			return fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, parsed.String())
		}
		amount = &parsed
	}

	line := &d.Lines[i]
	if edit.AccountCode != nil {
		line.AccountCode = *edit.AccountCode
	}
	if edit.AccountDesc != nil {
		line.AccountDesc = *edit.AccountDesc
	}
	if edit.CostCenterCode != nil {
		line.CostCenterCode = *edit.CostCenterCode
	}
	if edit.CostCenterDesc != nil {
		line.CostCenterDesc = *edit.CostCenterDesc
	}
	if edit.EmployeeCode != nil {
		line.EmployeeCode = *edit.EmployeeCode
	}
	if edit.EmployeeDesc != nil {
		line.EmployeeDesc = *edit.EmployeeDesc
	}
	if edit.VoucherDate != nil {
		line.VoucherDate = *edit.VoucherDate
	}
	if edit.PostDate != nil {
		line.PostDate = *edit.PostDate
	}
	if amount != nil {
		if line.LineType == Debit {
			line.DebitAmount = *amount
		} else {
			line.CreditAmount = *amount
		}
	}
	return nil
}

// TotalDebit sums the debit side of the draft.
func (d *DraftSession) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredit sums the credit side of the draft.
func (d *DraftSession) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// CheckBalance is the save gate: totals must be exactly equal. Decimal
// arithmetic makes the equality exact, so no epsilon is applied. The check is
// a pure function of the line set.
func (d *DraftSession) CheckBalance() error {
	debit := d.TotalDebit()
	credit := d.TotalCredit()
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debit total %s, credit total %s, difference %s",
			apperrors.ErrUnbalanced, debit.String(), credit.String(), debit.Sub(credit).String())
	}
	return nil
}

// Confirm marks the session saved under the given voucher number.
func (d *DraftSession) Confirm(voucherNo int64) error {
	if d.State != StateDrafting {
		return fmt.Errorf("%w: only a drafting session can be confirmed", apperrors.ErrInvalidOperation)
	}
	d.State = StateConfirmed
	d.VoucherNo = voucherNo
	return nil
}

// Acknowledge clears a confirmed session back to claim selection.
func (d *DraftSession) Acknowledge() error {
	if d.State != StateConfirmed {
		return fmt.Errorf("%w: session has no confirmed voucher to acknowledge", apperrors.ErrInvalidOperation)
	}
	d.State = StateSelecting
	d.SelectedClaimIDs = nil
	d.Lines = nil
	d.VoucherNo = 0
	return nil
}

func (d *DraftSession) editable(i int) error {
	if d.State != StateDrafting {
		return fmt.Errorf("%w: session is not in drafting state", apperrors.ErrInvalidOperation)
	}
	if i < 0 || i >= len(d.Lines) {
		return fmt.Errorf("%w: line index %d out of range", apperrors.ErrValidation, i)
	}
	return nil
}
