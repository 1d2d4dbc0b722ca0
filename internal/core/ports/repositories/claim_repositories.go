package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// ClaimFilter narrows claim listings. Zero values mean "no constraint".
type ClaimFilter struct {
	DepartmentCode string
	CompanyCode    string
	BudgetItemCode string
	EmployeeCode   string
	MinAmount      decimal.Decimal
	MaxAmount      decimal.Decimal
}

// ClaimReader defines read operations for expense claims.
type ClaimReader interface {
	// FindClaimByID retrieves a single claim by its identifier.
	FindClaimByID(ctx context.Context, claimID int64) (*domain.ExpenseClaim, error)

	// FindClaimsByIDs retrieves the given claims, keyed by claim ID.
	// Missing IDs are simply absent from the map.
	FindClaimsByIDs(ctx context.Context, claimIDs []int64) (map[int64]domain.ExpenseClaim, error)

	// ListPendingClaims retrieves all claims still awaiting booking,
	// newest expense date first.
	ListPendingClaims(ctx context.Context) ([]domain.ExpenseClaim, error)

	// ListClaims retrieves claims matching the filter, newest expense date first.
	ListClaims(ctx context.Context, filter ClaimFilter) ([]domain.ExpenseClaim, error)
}

// ClaimWriter defines write operations for expense claims.
type ClaimWriter interface {
	// SaveClaim persists a new claim and returns its assigned ID.
	SaveClaim(ctx context.Context, claim domain.ExpenseClaim) (int64, error)
}

// ClaimRepositoryFacade combines all claim repository operations.
type ClaimRepositoryFacade interface {
	ClaimReader
	ClaimWriter
}
