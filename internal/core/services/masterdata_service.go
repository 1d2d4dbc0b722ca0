package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
)

// MasterDataService answers the read-only dimension lookups the rest of the
// system depends on: description-to-code resolution for claim capture and the
// SAP code pairs journal lines are seeded with.
type MasterDataService struct {
	repo portsrepo.MasterDataReader
}

// NewMasterDataService creates a new MasterDataService.
func NewMasterDataService(repo portsrepo.MasterDataReader) *MasterDataService {
	return &MasterDataService{repo: repo}
}

// Resolve maps a dimension description to its stable code.
func (s *MasterDataService) Resolve(ctx context.Context, key domain.DimensionKey, description string) (string, error) {
	if !domain.ValidDimensionKey(key) {
		return "", fmt.Errorf("%w: unknown dimension key %q", apperrors.ErrValidation, key)
	}
	record, err := s.repo.FindByDescription(ctx, key, description)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: no %s with description %q", apperrors.ErrNotFound, key, description)
		}
		return "", fmt.Errorf("failed to resolve %s %q: %w", key, description, err)
	}
	return record.Code, nil
}

// CodesForBooking assembles the SAP codes a debit line needs: the account
// pair from the claim's budget item and the cost-center pair from its department.
func (s *MasterDataService) CodesForBooking(ctx context.Context, departmentCode, budgetItemCode string) (domain.BookingCodes, error) {
	budget, err := s.repo.FindByCode(ctx, domain.DimBudgetItem, budgetItemCode)
	if err != nil {
		return domain.BookingCodes{}, fmt.Errorf("failed to look up budget item %q: %w", budgetItemCode, err)
	}
	department, err := s.repo.FindByCode(ctx, domain.DimDepartment, departmentCode)
	if err != nil {
		return domain.BookingCodes{}, fmt.Errorf("failed to look up department %q: %w", departmentCode, err)
	}
	return domain.BookingCodes{
		AccountCode:    budget.SAPCode,
		AccountDesc:    budget.SAPDescription,
		CostCenterCode: department.SAPCode,
		CostCenterDesc: department.SAPDescription,
	}, nil
}

// EmployeeCodes returns the SAP employee code pair for an employee code.
func (s *MasterDataService) EmployeeCodes(ctx context.Context, employeeCode string) (domain.EmployeeCodes, error) {
	employee, err := s.repo.FindByCode(ctx, domain.DimEmployee, employeeCode)
	if err != nil {
		return domain.EmployeeCodes{}, fmt.Errorf("failed to look up employee %q: %w", employeeCode, err)
	}
	return domain.EmployeeCodes{
		Code: employee.SAPCode,
		Desc: employee.SAPDescription,
	}, nil
}

// ListDimension returns all records of one dimension, for selection lists.
func (s *MasterDataService) ListDimension(ctx context.Context, key domain.DimensionKey) ([]domain.MasterRecord, error) {
	if !domain.ValidDimensionKey(key) {
		return nil, fmt.Errorf("%w: unknown dimension key %q", apperrors.ErrValidation, key)
	}
	records, err := s.repo.ListByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", key, err)
	}
	return records, nil
}
