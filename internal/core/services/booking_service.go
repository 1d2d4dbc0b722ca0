package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
	"github.com/finbooks/expense_booking_app/internal/middleware"
)

// ErrClaimNotPending is returned when a selected claim has already been booked.
var ErrClaimNotPending = fmt.Errorf("%w: claim is not pending booking", apperrors.ErrInvalidOperation)

// DefaultVoucherBase is the number assigned to the very first voucher.
const DefaultVoucherBase = 100000

// BookingService is the voucher booking engine: it seeds draft sessions from
// pending claims, gates saves on the balance law, allocates voucher numbers
// and commits lines plus claim status transitions as one unit.
type BookingService struct {
	claimRepo   portsrepo.ClaimReader
	journalRepo portsrepo.JournalRepositoryFacade
	masterData  *MasterDataService
	voucherBase int64

	// allocMu serializes allocate-then-persist across concurrent sessions so
	// two bookings cannot compute the same next voucher number.
	allocMu sync.Mutex
}

// NewBookingService creates a new BookingService. voucherBase is the number
// of the first voucher ever booked; pass 0 for the default.
func NewBookingService(claimRepo portsrepo.ClaimReader, journalRepo portsrepo.JournalRepositoryFacade, masterData *MasterDataService, voucherBase int64) *BookingService {
	if voucherBase <= 0 {
		voucherBase = DefaultVoucherBase
	}
	return &BookingService{
		claimRepo:   claimRepo,
		journalRepo: journalRepo,
		masterData:  masterData,
		voucherBase: voucherBase,
	}
}

// StartDraft builds the session's draft line set from the selected claims:
// one debit line per claim, pre-filled from master data. When the selection
// is unchanged the existing draft (and any edits) is kept; any difference
// triggers a full rebuild.
func (s *BookingService) StartDraft(ctx context.Context, session *domain.DraftSession, claimIDs []int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if session.SameSelection(claimIDs) {
		logger.Debug("Selection unchanged, keeping existing draft", slog.Int("claims", len(claimIDs)))
		return nil
	}
	if len(claimIDs) == 0 {
		return fmt.Errorf("%w: at least one claim must be selected", apperrors.ErrValidation)
	}

	claims, err := s.claimRepo.FindClaimsByIDs(ctx, claimIDs)
	if err != nil {
		logger.Error("Failed to fetch claims for draft", slog.String("error", err.Error()))
		return fmt.Errorf("failed to fetch selected claims: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	seeded := make([]domain.JournalLine, 0, len(claimIDs))
	for _, claimID := range claimIDs {
		claim, ok := claims[claimID]
		if !ok {
			return fmt.Errorf("%w: claim %d", apperrors.ErrNotFound, claimID)
		}
		if claim.Status != domain.ClaimPending {
			return fmt.Errorf("%w (claim %d, status %s)", ErrClaimNotPending, claimID, claim.Status)
		}

		codes, err := s.masterData.CodesForBooking(ctx, claim.DepartmentCode, claim.BudgetItemCode)
		if err != nil {
			return err
		}
		employee, err := s.masterData.EmployeeCodes(ctx, claim.EmployeeCode)
		if err != nil {
			return err
		}

		sourceID := claim.ClaimID
		seeded = append(seeded, domain.JournalLine{
			LineType:       domain.Debit,
			AccountCode:    codes.AccountCode,
			AccountDesc:    codes.AccountDesc,
			CostCenterCode: codes.CostCenterCode,
			CostCenterDesc: codes.CostCenterDesc,
			DebitAmount:    claim.Amount,
			CreditAmount:   decimal.Zero,
			EmployeeCode:   employee.Code,
			EmployeeDesc:   employee.Desc,
			VoucherDate:    today,
			PostDate:       today,
			SourceClaimID:  &sourceID,
		})
	}

	if err := session.StartDrafting(claimIDs, seeded); err != nil {
		return err
	}
	logger.Info("Draft built", slog.Int("claims", len(claimIDs)), slog.Int("lines", len(seeded)))
	return nil
}

// SaveVoucher commits a balanced draft: it allocates the next voucher number,
// persists every line and flips each source claim to booked, all atomically.
// On any failure the draft is left untouched so the caller can correct and
// retry. Returns the allocated voucher number.
func (s *BookingService) SaveVoucher(ctx context.Context, session *domain.DraftSession, actorUserID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if session.State != domain.StateDrafting {
		return 0, fmt.Errorf("%w: no draft to save", apperrors.ErrInvalidOperation)
	}
	if err := session.CheckBalance(); err != nil {
		logger.Warn("Save rejected, draft unbalanced",
			slog.String("total_debit", session.TotalDebit().StringFixed(2)),
			slog.String("total_credit", session.TotalCredit().StringFixed(2)))
		return 0, err
	}

	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	voucherNo, err := s.nextVoucherNo(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	bookingDate := now.Truncate(24 * time.Hour)
	lines := make([]domain.JournalLine, len(session.Lines))
	for i, line := range session.Lines {
		line.VoucherNo = voucherNo
		line.BookingDate = bookingDate
		line.CreatedAt = now
		line.CreatedBy = actorUserID
		lines[i] = line
	}

	claimIDs := append([]int64(nil), session.SelectedClaimIDs...)
	if err := s.journalRepo.SaveVoucher(ctx, voucherNo, lines, claimIDs); err != nil {
		logger.Error("Failed to persist voucher", slog.Int64("voucher_no", voucherNo), slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrPersistence) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %s", apperrors.ErrPersistence, err.Error())
	}

	if err := session.Confirm(voucherNo); err != nil {
		// The voucher is committed at this point; a state error here would be a bug.
		return voucherNo, err
	}

	logger.Info("Voucher booked",
		slog.Int64("voucher_no", voucherNo),
		slog.Int("lines", len(lines)),
		slog.Int("claims", len(claimIDs)))
	return voucherNo, nil
}

// Acknowledge clears a confirmed session back to claim selection.
func (s *BookingService) Acknowledge(session *domain.DraftSession) error {
	return session.Acknowledge()
}

// nextVoucherNo computes max(voucher_no)+1, or the configured base for an
// empty ledger. Callers must hold allocMu.
func (s *BookingService) nextVoucherNo(ctx context.Context) (int64, error) {
	max, err := s.journalRepo.MaxVoucherNo(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read max voucher number: %w", err)
	}
	if max == nil {
		return s.voucherBase, nil
	}
	return *max + 1, nil
}
