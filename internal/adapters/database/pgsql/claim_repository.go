package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
)

// PgxClaimRepository persists expense claims in PostgreSQL.
type PgxClaimRepository struct {
	pool *pgxpool.Pool
}

// NewPgxClaimRepository creates a new repository for expense claim data.
func NewPgxClaimRepository(pool *pgxpool.Pool) portsrepo.ClaimRepositoryFacade {
	return &PgxClaimRepository{pool: pool}
}

const claimColumns = `id, expense_date, department_code, company_code, budget_item_code, employee_code, amount, description, status, created_at, created_by`

func scanClaim(row pgx.Row) (domain.ExpenseClaim, error) {
	var claim domain.ExpenseClaim
	err := row.Scan(
		&claim.ClaimID,
		&claim.ExpenseDate,
		&claim.DepartmentCode,
		&claim.CompanyCode,
		&claim.BudgetItemCode,
		&claim.EmployeeCode,
		&claim.Amount,
		&claim.Description,
		&claim.Status,
		&claim.CreatedAt,
		&claim.CreatedBy,
	)
	return claim, err
}

// SaveClaim inserts a new claim and returns its assigned ID.
func (r *PgxClaimRepository) SaveClaim(ctx context.Context, claim domain.ExpenseClaim) (int64, error) {
	query := `
		INSERT INTO expenses (expense_date, department_code, company_code, budget_item_code, employee_code, amount, description, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	var claimID int64
	err := r.pool.QueryRow(ctx, query,
		claim.ExpenseDate,
		claim.DepartmentCode,
		claim.CompanyCode,
		claim.BudgetItemCode,
		claim.EmployeeCode,
		claim.Amount,
		claim.Description,
		claim.Status,
		claim.CreatedAt,
		claim.CreatedBy,
	).Scan(&claimID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert claim: %w", err)
	}
	return claimID, nil
}

// FindClaimByID retrieves a single claim.
func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, claimID int64) (*domain.ExpenseClaim, error) {
	query := `SELECT ` + claimColumns + ` FROM expenses WHERE id = $1;`
	claim, err := scanClaim(r.pool.QueryRow(ctx, query, claimID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find claim %d: %w", claimID, err)
	}
	return &claim, nil
}

// FindClaimsByIDs retrieves the given claims keyed by ID. Missing IDs are
// simply absent from the map.
func (r *PgxClaimRepository) FindClaimsByIDs(ctx context.Context, claimIDs []int64) (map[int64]domain.ExpenseClaim, error) {
	query := `SELECT ` + claimColumns + ` FROM expenses WHERE id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, claimIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims by IDs: %w", err)
	}
	defer rows.Close()

	claims := make(map[int64]domain.ExpenseClaim, len(claimIDs))
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim row: %w", err)
		}
		claims[claim.ClaimID] = claim
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claim rows: %w", err)
	}
	return claims, nil
}

// ListPendingClaims retrieves all claims awaiting booking, newest first.
func (r *PgxClaimRepository) ListPendingClaims(ctx context.Context) ([]domain.ExpenseClaim, error) {
	query := `SELECT ` + claimColumns + ` FROM expenses WHERE status = 'pending' ORDER BY expense_date DESC, id DESC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending claims: %w", err)
	}
	defer rows.Close()
	return collectClaims(rows)
}

// ListClaims retrieves claims matching the filter, newest first.
func (r *PgxClaimRepository) ListClaims(ctx context.Context, filter portsrepo.ClaimFilter) ([]domain.ExpenseClaim, error) {
	query := `SELECT ` + claimColumns + ` FROM expenses WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}
	if filter.DepartmentCode != "" {
		addArg(" AND department_code = $%d", filter.DepartmentCode)
	}
	if filter.CompanyCode != "" {
		addArg(" AND company_code = $%d", filter.CompanyCode)
	}
	if filter.BudgetItemCode != "" {
		addArg(" AND budget_item_code = $%d", filter.BudgetItemCode)
	}
	if filter.EmployeeCode != "" {
		addArg(" AND employee_code = $%d", filter.EmployeeCode)
	}
	if !filter.MinAmount.IsZero() {
		addArg(" AND amount >= $%d", filter.MinAmount)
	}
	if !filter.MaxAmount.IsZero() {
		addArg(" AND amount <= $%d", filter.MaxAmount)
	}
	query += " ORDER BY expense_date DESC, id DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()
	return collectClaims(rows)
}

func collectClaims(rows pgx.Rows) ([]domain.ExpenseClaim, error) {
	claims := []domain.ExpenseClaim{}
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim row: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claim rows: %w", err)
	}
	return claims, nil
}
