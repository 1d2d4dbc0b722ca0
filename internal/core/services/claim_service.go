package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
	"github.com/finbooks/expense_booking_app/internal/dto"
	"github.com/finbooks/expense_booking_app/internal/middleware"
)

// ClaimService handles expense claim capture and queries.
type ClaimService struct {
	claimRepo  portsrepo.ClaimRepositoryFacade
	masterData *MasterDataService
}

// NewClaimService creates a new ClaimService.
func NewClaimService(claimRepo portsrepo.ClaimRepositoryFacade, masterData *MasterDataService) *ClaimService {
	return &ClaimService{
		claimRepo:  claimRepo,
		masterData: masterData,
	}
}

// CreateClaim validates and persists a new claim in pending state. Dimension
// descriptions are resolved to their master-data codes before saving.
func (s *ClaimService) CreateClaim(ctx context.Context, req dto.CreateClaimRequest, creatorUserID string) (*domain.ExpenseClaim, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a valid decimal", apperrors.ErrValidation, req.Amount)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: claim amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	departmentCode, err := s.masterData.Resolve(ctx, domain.DimDepartment, req.Department)
	if err != nil {
		return nil, err
	}
	companyCode, err := s.masterData.Resolve(ctx, domain.DimCompany, req.Company)
	if err != nil {
		return nil, err
	}
	budgetItemCode, err := s.masterData.Resolve(ctx, domain.DimBudgetItem, req.BudgetItem)
	if err != nil {
		return nil, err
	}
	employeeCode, err := s.masterData.Resolve(ctx, domain.DimEmployee, req.Employee)
	if err != nil {
		return nil, err
	}

	claim := domain.ExpenseClaim{
		ExpenseDate:    req.ExpenseDate,
		DepartmentCode: departmentCode,
		CompanyCode:    companyCode,
		BudgetItemCode: budgetItemCode,
		EmployeeCode:   employeeCode,
		Amount:         amount,
		Description:    req.Description,
		Status:         domain.ClaimPending,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: creatorUserID,
		},
	}
	if err := claim.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	claimID, err := s.claimRepo.SaveClaim(ctx, claim)
	if err != nil {
		logger.Error("Failed to save claim", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save claim: %w", err)
	}
	claim.ClaimID = claimID

	logger.Info("Claim created", slog.Int64("claim_id", claimID), slog.String("amount", amount.StringFixed(2)))
	return &claim, nil
}

// ListClaims retrieves claims matching the filter, newest first.
func (s *ClaimService) ListClaims(ctx context.Context, req dto.ListClaimsRequest) ([]domain.ExpenseClaim, error) {
	filter := portsrepo.ClaimFilter{
		DepartmentCode: req.DepartmentCode,
		CompanyCode:    req.CompanyCode,
		BudgetItemCode: req.BudgetItemCode,
		EmployeeCode:   req.EmployeeCode,
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
	if !filter.MaxAmount.IsZero() && filter.MaxAmount.LessThan(filter.MinAmount) {
		return nil, fmt.Errorf("%w: maxAmount must not be below minAmount", apperrors.ErrValidation)
	}

	claims, err := s.claimRepo.ListClaims(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

// ListPendingClaims retrieves all claims awaiting booking.
func (s *ClaimService) ListPendingClaims(ctx context.Context) ([]domain.ExpenseClaim, error) {
	claims, err := s.claimRepo.ListPendingClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}
	return claims, nil
}
