package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// EntryFilter narrows journal line listings. Zero values mean "no constraint".
// Amount bounds match a line when either its debit or credit side falls in range.
type EntryFilter struct {
	VoucherNo       int64
	AccountCodeLike string
	EmployeeLike    string
	MinAmount       decimal.Decimal
	MaxAmount       decimal.Decimal
	BookedFrom      time.Time
	BookedTo        time.Time
}

// JournalReader defines read operations over the booked ledger.
type JournalReader interface {
	// MaxVoucherNo returns the highest voucher number persisted so far,
	// or nil when the ledger is empty.
	MaxVoucherNo(ctx context.Context) (*int64, error)

	// FindLinesByVoucherNo retrieves all lines of one voucher in insertion order.
	FindLinesByVoucherNo(ctx context.Context, voucherNo int64) ([]domain.JournalLine, error)

	// ListLines retrieves lines matching the filter, ordered by voucher
	// number descending then line ID ascending.
	ListLines(ctx context.Context, filter EntryFilter) ([]domain.JournalLine, error)
}

// JournalWriter defines the single write operation of the append-only ledger.
type JournalWriter interface {
	// SaveVoucher persists every line under voucherNo and transitions each
	// claim in claimIDs from pending to booked, atomically: either all lines
	// and all status changes commit, or none do. A voucher number already in
	// use, or a claim no longer pending, aborts the whole save.
	SaveVoucher(ctx context.Context, voucherNo int64, lines []domain.JournalLine, claimIDs []int64) error
}

// JournalRepositoryFacade combines all journal repository operations.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
