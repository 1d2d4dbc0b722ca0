package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
	"github.com/finbooks/expense_booking_app/internal/dto"
)

// LedgerService answers read queries over booked vouchers.
type LedgerService struct {
	journalRepo portsrepo.JournalReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalReader) *LedgerService {
	return &LedgerService{journalRepo: journalRepo}
}

// ListEntries retrieves booked lines matching the filter, newest voucher first.
func (s *LedgerService) ListEntries(ctx context.Context, req dto.ListEntriesRequest) ([]domain.JournalLine, error) {
	filter := portsrepo.EntryFilter{
		VoucherNo:       req.VoucherNo,
		AccountCodeLike: req.AccountCode,
		EmployeeLike:    req.Employee,
	}
	if req.MinAmount != "" {
		min, err := decimal.NewFromString(req.MinAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: minAmount %q is not a valid decimal", apperrors.ErrValidation, req.MinAmount)
		}
		filter.MinAmount = min
	}
	if req.MaxAmount != "" {
		max, err := decimal.NewFromString(req.MaxAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: maxAmount %q is not a valid decimal", apperrors.ErrValidation, req.MaxAmount)
		}
		filter.MaxAmount = max
	}
	if req.BookedFrom != nil {
		filter.BookedFrom = *req.BookedFrom
	}
	if req.BookedTo != nil {
		filter.BookedTo = *req.BookedTo
	}

	lines, err := s.journalRepo.ListLines(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return lines, nil
}

// GetVoucher retrieves one voucher with all its lines.
func (s *LedgerService) GetVoucher(ctx context.Context, voucherNo int64) (*domain.Voucher, error) {
	lines, err := s.journalRepo.FindLinesByVoucherNo(ctx, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %d: %w", voucherNo, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: voucher %d", apperrors.ErrNotFound, voucherNo)
	}
	return &domain.Voucher{VoucherNo: voucherNo, Lines: lines}, nil
}
