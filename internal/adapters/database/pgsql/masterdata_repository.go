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

// PgxMasterDataRepository reads booking dimensions from PostgreSQL.
type PgxMasterDataRepository struct {
	pool *pgxpool.Pool
}

// NewPgxMasterDataRepository creates a new repository for master data.
func NewPgxMasterDataRepository(pool *pgxpool.Pool) portsrepo.MasterDataReader {
	return &PgxMasterDataRepository{pool: pool}
}

const masterColumns = `key, code, description, sap_code, sap_description`

func scanMaster(row pgx.Row) (domain.MasterRecord, error) {
	var record domain.MasterRecord
	err := row.Scan(
		&record.Key,
		&record.Code,
		&record.Description,
		&record.SAPCode,
		&record.SAPDescription,
	)
	return record, err
}

// FindByCode retrieves one record of a dimension by its code.
func (r *PgxMasterDataRepository) FindByCode(ctx context.Context, key domain.DimensionKey, code string) (*domain.MasterRecord, error) {
	query := `SELECT ` + masterColumns + ` FROM master_data WHERE key = $1 AND code = $2;`
	record, err := scanMaster(r.pool.QueryRow(ctx, query, key, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s %q: %w", key, code, err)
	}
	return &record, nil
}

// FindByDescription retrieves one record of a dimension by its description.
func (r *PgxMasterDataRepository) FindByDescription(ctx context.Context, key domain.DimensionKey, description string) (*domain.MasterRecord, error) {
	query := `SELECT ` + masterColumns + ` FROM master_data WHERE key = $1 AND description = $2;`
	record, err := scanMaster(r.pool.QueryRow(ctx, query, key, description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s by description %q: %w", key, description, err)
	}
	return &record, nil
}

// ListByKey retrieves all records of one dimension ordered by code.
func (r *PgxMasterDataRepository) ListByKey(ctx context.Context, key domain.DimensionKey) ([]domain.MasterRecord, error) {
	query := `SELECT ` + masterColumns + ` FROM master_data WHERE key = $1 ORDER BY code;`
	rows, err := r.pool.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", key, err)
	}
	defer rows.Close()

	records := []domain.MasterRecord{}
	for rows.Next() {
		record, err := scanMaster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan master data row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating master data rows: %w", err)
	}
	return records, nil
}
