package repositories

import (
	"context"

	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

// MasterDataReader defines the read-only master-data lookups the engine
// depends on. Maintenance of master data happens outside this service.
type MasterDataReader interface {
	// FindByCode retrieves the record for a dimension code.
	FindByCode(ctx context.Context, key domain.DimensionKey, code string) (*domain.MasterRecord, error)

	// FindByDescription retrieves the record whose description matches exactly.
	FindByDescription(ctx context.Context, key domain.DimensionKey, description string) (*domain.MasterRecord, error)

	// ListByKey retrieves all records of one dimension ordered by code.
	ListByKey(ctx context.Context, key domain.DimensionKey) ([]domain.MasterRecord, error)
}
