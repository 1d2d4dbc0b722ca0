package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
)

// PgxJournalRepository persists booked voucher lines in PostgreSQL.
type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxJournalRepository creates a new repository for journal entry data.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

const entryColumns = `id, voucher_no, line_type, account_code, account_desc, cost_center_code, cost_center_desc, debit_amount, credit_amount, employee_code, employee_desc, voucher_date, post_date, booking_date, source_claim_id, created_at, created_by`

func scanEntry(row pgx.Row) (domain.JournalLine, error) {
	var line domain.JournalLine
	err := row.Scan(
		&line.LineID,
		&line.VoucherNo,
		&line.LineType,
		&line.AccountCode,
		&line.AccountDesc,
		&line.CostCenterCode,
		&line.CostCenterDesc,
		&line.DebitAmount,
		&line.CreditAmount,
		&line.EmployeeCode,
		&line.EmployeeDesc,
		&line.VoucherDate,
		&line.PostDate,
		&line.BookingDate,
		&line.SourceClaimID,
		&line.CreatedAt,
		&line.CreatedBy,
	)
	return line, err
}

// MaxVoucherNo returns the highest voucher number booked so far, or nil when
// the ledger is empty.
func (r *PgxJournalRepository) MaxVoucherNo(ctx context.Context) (*int64, error) {
	var max *int64
	err := r.pool.QueryRow(ctx, `SELECT MAX(voucher_no) FROM journal_entries;`).Scan(&max)
	if err != nil {
		return nil, fmt.Errorf("failed to read max voucher number: %w", err)
	}
	return max, nil
}

// SaveVoucher atomically inserts all lines of a voucher and flips the source
// claims from pending to booked. The whole transaction rolls back if the
// voucher number is already in use or any claim is no longer pending.
func (r *PgxJournalRepository) SaveVoucher(ctx context.Context, voucherNo int64, lines []domain.JournalLine, claimIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var inUse bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM journal_entries WHERE voucher_no = $1);`, voucherNo).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check voucher number %d: %w", voucherNo, err)
	}
	if inUse {
		return fmt.Errorf("%w: voucher number %d is already in use", apperrors.ErrDuplicate, voucherNo)
	}

	insertQuery := `
		INSERT INTO journal_entries (voucher_no, line_type, account_code, account_desc, cost_center_code, cost_center_desc, debit_amount, credit_amount, employee_code, employee_desc, voucher_date, post_date, booking_date, source_claim_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertQuery,
			voucherNo,
			line.LineType,
			line.AccountCode,
			line.AccountDesc,
			line.CostCenterCode,
			line.CostCenterDesc,
			line.DebitAmount,
			line.CreditAmount,
			line.EmployeeCode,
			line.EmployeeDesc,
			line.VoucherDate,
			line.PostDate,
			line.BookingDate,
			line.SourceClaimID,
			line.CreatedAt,
			line.CreatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert voucher line: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE expenses SET status = 'booked' WHERE id = ANY($1) AND status = 'pending';`, claimIDs)
	if err != nil {
		return fmt.Errorf("failed to mark claims booked: %w", err)
	}
	if tag.RowsAffected() != int64(len(claimIDs)) {
		return fmt.Errorf("%w: expected to book %d claims, booked %d", apperrors.ErrInvalidOperation, len(claimIDs), tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit voucher %d: %w", voucherNo, err)
	}
	return nil
}

// FindLinesByVoucherNo retrieves all lines of one voucher in insertion order.
func (r *PgxJournalRepository) FindLinesByVoucherNo(ctx context.Context, voucherNo int64) ([]domain.JournalLine, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE voucher_no = $1 ORDER BY id;`
	rows, err := r.pool.Query(ctx, query, voucherNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query voucher %d: %w", voucherNo, err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListLines retrieves booked lines matching the filter, newest voucher first.
func (r *PgxJournalRepository) ListLines(ctx context.Context, filter portsrepo.EntryFilter) ([]domain.JournalLine, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}
	if filter.VoucherNo != 0 {
		addArg(" AND voucher_no = $%d", filter.VoucherNo)
	}
	if filter.AccountCodeLike != "" {
		addArg(" AND account_code ILIKE $%d", "%"+filter.AccountCodeLike+"%")
	}
	if filter.EmployeeLike != "" {
		args = append(args, "%"+filter.EmployeeLike+"%")
		query += fmt.Sprintf(" AND (employee_code ILIKE $%d OR employee_desc ILIKE $%d)", len(args), len(args))
	}
	if !filter.MinAmount.IsZero() {
		args = append(args, filter.MinAmount)
		query += fmt.Sprintf(" AND (debit_amount >= $%d OR credit_amount >= $%d)", len(args), len(args))
	}
	if !filter.MaxAmount.IsZero() {
		args = append(args, filter.MaxAmount)
		query += fmt.Sprintf(" AND (debit_amount <= $%d OR credit_amount <= $%d)", len(args), len(args))
	}
	if !filter.BookedFrom.IsZero() {
		addArg(" AND booking_date >= $%d", filter.BookedFrom)
	}
	if !filter.BookedTo.IsZero() {
		addArg(" AND booking_date <= $%d", filter.BookedTo)
	}
	query += " ORDER BY voucher_no DESC, id;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.JournalLine, error) {
	lines := []domain.JournalLine{}
	for rows.Next() {
		line, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return lines, nil
}
