package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	"github.com/finbooks/expense_booking_app/internal/core/services"
	"github.com/finbooks/expense_booking_app/internal/dto"
)

type ClaimServiceTestSuite struct {
	suite.Suite
	mockClaimRepo      *MockClaimRepository
	mockMasterDataRepo *MockMasterDataRepository
	service            *services.ClaimService
}

func (suite *ClaimServiceTestSuite) SetupTest() {
	suite.mockClaimRepo = new(MockClaimRepository)
	suite.mockMasterDataRepo = new(MockMasterDataRepository)
	masterData := services.NewMasterDataService(suite.mockMasterDataRepo)
	suite.service = services.NewClaimService(suite.mockClaimRepo, masterData)
}

func (suite *ClaimServiceTestSuite) createRequest() dto.CreateClaimRequest {
	return dto.CreateClaimRequest{
		ExpenseDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Department:  "Sales",
		Company:     "Acme GmbH",
		BudgetItem:  "Travel",
		Employee:    "J. Smith",
		Amount:      "120.50",
		Description: "Client visit",
	}
}

func (suite *ClaimServiceTestSuite) expectResolutions() {
	suite.mockMasterDataRepo.On("FindByDescription", mock.Anything, domain.DimDepartment, "Sales").
		Return(&domain.MasterRecord{Key: domain.DimDepartment, Code: "D01", Description: "Sales"}, nil)
	suite.mockMasterDataRepo.On("FindByDescription", mock.Anything, domain.DimCompany, "Acme GmbH").
		Return(&domain.MasterRecord{Key: domain.DimCompany, Code: "C01", Description: "Acme GmbH"}, nil)
	suite.mockMasterDataRepo.On("FindByDescription", mock.Anything, domain.DimBudgetItem, "Travel").
		Return(&domain.MasterRecord{Key: domain.DimBudgetItem, Code: "B01", Description: "Travel"}, nil)
	suite.mockMasterDataRepo.On("FindByDescription", mock.Anything, domain.DimEmployee, "J. Smith").
		Return(&domain.MasterRecord{Key: domain.DimEmployee, Code: "E01", Description: "J. Smith"}, nil)
}

func (suite *ClaimServiceTestSuite) TestCreateClaim_Success() {
	suite.expectResolutions()
	suite.mockClaimRepo.On("SaveClaim", mock.Anything, mock.AnythingOfType("domain.ExpenseClaim")).
		Return(int64(17), nil).Once()

	claim, err := suite.service.CreateClaim(context.Background(), suite.createRequest(), "user-42")

	suite.Require().NoError(err)
	suite.Equal(int64(17), claim.ClaimID)
	suite.Equal("D01", claim.DepartmentCode)
	suite.Equal("C01", claim.CompanyCode)
	suite.Equal("B01", claim.BudgetItemCode)
	suite.Equal("E01", claim.EmployeeCode)
	suite.Equal(domain.ClaimPending, claim.Status)
	suite.Equal("user-42", claim.CreatedBy)
	suite.Equal("120.50", claim.Amount.StringFixed(2))
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *ClaimServiceTestSuite) TestCreateClaim_RejectsNonPositiveAmount() {
	req := suite.createRequest()
	req.Amount = "0"

	_, err := suite.service.CreateClaim(context.Background(), req, "user-42")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "SaveClaim", mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestCreateClaim_UnknownDimension() {
	suite.mockMasterDataRepo.On("FindByDescription", mock.Anything, domain.DimDepartment, "Sales").
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateClaim(context.Background(), suite.createRequest(), "user-42")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockClaimRepo.AssertNotCalled(suite.T(), "SaveClaim", mock.Anything, mock.Anything)
}

func (suite *ClaimServiceTestSuite) TestListClaims_RejectsInvertedAmountRange() {
	_, err := suite.service.ListClaims(context.Background(), dto.ListClaimsRequest{
		MinAmount: "50.00",
		MaxAmount: "10.00",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestClaimServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimServiceTestSuite))
}
