package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
	portsrepo "github.com/finbooks/expense_booking_app/internal/core/ports/repositories"
	"github.com/finbooks/expense_booking_app/internal/core/services"
)

// --- Mock ClaimRepository ---
type MockClaimRepository struct {
	mock.Mock
}

var _ portsrepo.ClaimRepositoryFacade = (*MockClaimRepository)(nil)

func (m *MockClaimRepository) SaveClaim(ctx context.Context, claim domain.ExpenseClaim) (int64, error) {
	args := m.Called(ctx, claim)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClaimRepository) FindClaimByID(ctx context.Context, claimID int64) (*domain.ExpenseClaim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseClaim), args.Error(1)
}

func (m *MockClaimRepository) FindClaimsByIDs(ctx context.Context, claimIDs []int64) (map[int64]domain.ExpenseClaim, error) {
	args := m.Called(ctx, claimIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.ExpenseClaim), args.Error(1)
}

func (m *MockClaimRepository) ListPendingClaims(ctx context.Context) ([]domain.ExpenseClaim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseClaim), args.Error(1)
}

func (m *MockClaimRepository) ListClaims(ctx context.Context, filter portsrepo.ClaimFilter) ([]domain.ExpenseClaim, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseClaim), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) MaxVoucherNo(ctx context.Context) (*int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByVoucherNo(ctx context.Context, voucherNo int64) ([]domain.JournalLine, error) {
	args := m.Called(ctx, voucherNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLines(ctx context.Context, filter portsrepo.EntryFilter) ([]domain.JournalLine, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveVoucher(ctx context.Context, voucherNo int64, lines []domain.JournalLine, claimIDs []int64) error {
	args := m.Called(ctx, voucherNo, lines, claimIDs)
	return args.Error(0)
}

// --- Mock MasterDataRepository ---
type MockMasterDataRepository struct {
	mock.Mock
}

var _ portsrepo.MasterDataReader = (*MockMasterDataRepository)(nil)

func (m *MockMasterDataRepository) FindByCode(ctx context.Context, key domain.DimensionKey, code string) (*domain.MasterRecord, error) {
	args := m.Called(ctx, key, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MasterRecord), args.Error(1)
}

func (m *MockMasterDataRepository) FindByDescription(ctx context.Context, key domain.DimensionKey, description string) (*domain.MasterRecord, error) {
	args := m.Called(ctx, key, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MasterRecord), args.Error(1)
}

func (m *MockMasterDataRepository) ListByKey(ctx context.Context, key domain.DimensionKey) ([]domain.MasterRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MasterRecord), args.Error(1)
}

// --- Test Suite Setup ---
type BookingServiceTestSuite struct {
	suite.Suite
	mockClaimRepo      *MockClaimRepository
	mockJournalRepo    *MockJournalRepository
	mockMasterDataRepo *MockMasterDataRepository
	service            *services.BookingService
	userID             string
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockClaimRepo = new(MockClaimRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockMasterDataRepo = new(MockMasterDataRepository)
	masterData := services.NewMasterDataService(suite.mockMasterDataRepo)
	suite.service = services.NewBookingService(suite.mockClaimRepo, suite.mockJournalRepo, masterData, 0)
	suite.userID = "user-42"
}

func (suite *BookingServiceTestSuite) pendingClaim(claimID int64, amount string) domain.ExpenseClaim {
	return domain.ExpenseClaim{
		ClaimID:        claimID,
		ExpenseDate:    time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		DepartmentCode: "D01",
		CompanyCode:    "C01",
		BudgetItemCode: "B01",
		EmployeeCode:   "E01",
		Amount:         decimal.RequireFromString(amount),
		Status:         domain.ClaimPending,
	}
}

// expectMasterDataLookups wires the per-claim code lookups for pendingClaim fixtures.
func (suite *BookingServiceTestSuite) expectMasterDataLookups() {
	suite.mockMasterDataRepo.On("FindByCode", mock.Anything, domain.DimBudgetItem, "B01").
		Return(&domain.MasterRecord{Key: domain.DimBudgetItem, Code: "B01", SAPCode: "600100", SAPDescription: "Travel expenses"}, nil)
	suite.mockMasterDataRepo.On("FindByCode", mock.Anything, domain.DimDepartment, "D01").
		Return(&domain.MasterRecord{Key: domain.DimDepartment, Code: "D01", SAPCode: "CC1000", SAPDescription: "Sales"}, nil)
	suite.mockMasterDataRepo.On("FindByCode", mock.Anything, domain.DimEmployee, "E01").
		Return(&domain.MasterRecord{Key: domain.DimEmployee, Code: "E01", SAPCode: "EMP01", SAPDescription: "J. Smith"}, nil)
}

// startDraft builds a drafting session over the given pending claims.
func (suite *BookingServiceTestSuite) startDraft(session *domain.DraftSession, claims ...domain.ExpenseClaim) {
	claimIDs := make([]int64, len(claims))
	claimMap := make(map[int64]domain.ExpenseClaim, len(claims))
	for i, claim := range claims {
		claimIDs[i] = claim.ClaimID
		claimMap[claim.ClaimID] = claim
	}
	suite.expectMasterDataLookups()
	suite.mockClaimRepo.On("FindClaimsByIDs", mock.Anything, claimIDs).Return(claimMap, nil).Once()
	suite.Require().NoError(suite.service.StartDraft(context.Background(), session, claimIDs))
}

// --- Test Cases ---

func (suite *BookingServiceTestSuite) TestStartDraft_SeedsDebitLines() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"), suite.pendingClaim(2, "40.00"))

	suite.Equal(domain.StateDrafting, session.State)
	suite.Require().Len(session.Lines, 2)
	suite.Equal("600100", session.Lines[0].AccountCode)
	suite.Equal("CC1000", session.Lines[0].CostCenterCode)
	suite.Equal("EMP01", session.Lines[0].EmployeeCode)
	suite.True(session.Lines[0].DebitAmount.Equal(decimal.RequireFromString("60.00")))
	suite.True(session.Lines[1].DebitAmount.Equal(decimal.RequireFromString("40.00")))
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestStartDraft_UnchangedSelectionKeepsEdits() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"), suite.pendingClaim(2, "40.00"))

	edited := "75.00"
	suite.Require().NoError(session.EditLine(0, domain.LineEdit{Amount: &edited}))

	// Same set, different order: no repository call, edits survive.
	suite.Require().NoError(suite.service.StartDraft(context.Background(), session, []int64{2, 1}))
	suite.True(session.Lines[0].DebitAmount.Equal(decimal.RequireFromString("75.00")))
	suite.mockClaimRepo.AssertNumberOfCalls(suite.T(), "FindClaimsByIDs", 1)
}

func (suite *BookingServiceTestSuite) TestStartDraft_ChangedSelectionRebuilds() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"))

	edited := "75.00"
	suite.Require().NoError(session.EditLine(0, domain.LineEdit{Amount: &edited}))

	claims := map[int64]domain.ExpenseClaim{
		1: suite.pendingClaim(1, "60.00"),
		2: suite.pendingClaim(2, "40.00"),
	}
	suite.mockClaimRepo.On("FindClaimsByIDs", mock.Anything, []int64{1, 2}).Return(claims, nil).Once()

	suite.Require().NoError(suite.service.StartDraft(context.Background(), session, []int64{1, 2}))
	suite.Require().Len(session.Lines, 2)
	suite.True(session.Lines[0].DebitAmount.Equal(decimal.RequireFromString("60.00")), "edit must be discarded on rebuild")
}

func (suite *BookingServiceTestSuite) TestStartDraft_RejectsBookedClaim() {
	session := domain.NewDraftSession()
	booked := suite.pendingClaim(1, "60.00")
	booked.Status = domain.ClaimBooked

	suite.expectMasterDataLookups()
	suite.mockClaimRepo.On("FindClaimsByIDs", mock.Anything, []int64{1}).
		Return(map[int64]domain.ExpenseClaim{1: booked}, nil).Once()

	err := suite.service.StartDraft(context.Background(), session, []int64{1})
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.Equal(domain.StateSelecting, session.State)
}

func (suite *BookingServiceTestSuite) TestStartDraft_MissingClaim() {
	session := domain.NewDraftSession()
	suite.mockClaimRepo.On("FindClaimsByIDs", mock.Anything, []int64{7}).
		Return(map[int64]domain.ExpenseClaim{}, nil).Once()

	err := suite.service.StartDraft(context.Background(), session, []int64{7})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BookingServiceTestSuite) TestSaveVoucher_RejectsUnbalancedDraft() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"))

	_, err := suite.service.SaveVoucher(context.Background(), session, suite.userID)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.Equal(domain.StateDrafting, session.State)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// balance adds a credit line matching the draft's debit total.
func (suite *BookingServiceTestSuite) balance(session *domain.DraftSession) {
	suite.Require().NoError(session.AppendCreditLine(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	total := session.TotalDebit().StringFixed(2)
	suite.Require().NoError(session.EditLine(len(session.Lines)-1, domain.LineEdit{Amount: &total}))
}

func (suite *BookingServiceTestSuite) TestSaveVoucher_FirstVoucherUsesBase() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"), suite.pendingClaim(2, "40.00"))
	suite.balance(session)

	suite.mockJournalRepo.On("MaxVoucherNo", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("SaveVoucher", mock.Anything, int64(100000), mock.AnythingOfType("[]domain.JournalLine"), []int64{1, 2}).Return(nil).Once()

	voucherNo, err := suite.service.SaveVoucher(context.Background(), session, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(100000), voucherNo)
	suite.Equal(domain.StateConfirmed, session.State)
	suite.Equal(int64(100000), session.VoucherNo)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *BookingServiceTestSuite) TestSaveVoucher_AllocatesMaxPlusOne() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"))
	suite.balance(session)

	maxNo := int64(100041)
	suite.mockJournalRepo.On("MaxVoucherNo", mock.Anything).Return(&maxNo, nil).Once()

	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("SaveVoucher", mock.Anything, int64(100042), mock.AnythingOfType("[]domain.JournalLine"), []int64{1}).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(2).([]domain.JournalLine)
		}).Return(nil).Once()

	voucherNo, err := suite.service.SaveVoucher(context.Background(), session, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(int64(100042), voucherNo)

	suite.Require().Len(savedLines, 2)
	for _, line := range savedLines {
		suite.Equal(int64(100042), line.VoucherNo)
		suite.Equal(suite.userID, line.CreatedBy)
		suite.False(line.BookingDate.IsZero())
	}
}

func (suite *BookingServiceTestSuite) TestSaveVoucher_PersistenceFailureKeepsDraft() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"))
	suite.balance(session)

	maxNo := int64(100000)
	suite.mockJournalRepo.On("MaxVoucherNo", mock.Anything).Return(&maxNo, nil).Once()
	suite.mockJournalRepo.On("SaveVoucher", mock.Anything, int64(100001), mock.Anything, []int64{1}).
		Return(errors.New("connection reset")).Once()

	_, err := suite.service.SaveVoucher(context.Background(), session, suite.userID)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.Equal(domain.StateDrafting, session.State, "failed save must leave the draft editable")
	suite.Zero(session.VoucherNo)
}

func (suite *BookingServiceTestSuite) TestSaveVoucher_SequentialNumbersIncrease() {
	first := domain.NewDraftSession()
	suite.startDraft(first, suite.pendingClaim(1, "60.00"))
	suite.balance(first)

	second := domain.NewDraftSession()
	suite.startDraft(second, suite.pendingClaim(2, "40.00"))
	suite.balance(second)

	suite.mockJournalRepo.On("MaxVoucherNo", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("SaveVoucher", mock.Anything, int64(100000), mock.Anything, []int64{1}).Return(nil).Once()

	firstNo, err := suite.service.SaveVoucher(context.Background(), first, suite.userID)
	suite.Require().NoError(err)

	maxNo := firstNo
	suite.mockJournalRepo.On("MaxVoucherNo", mock.Anything).Return(&maxNo, nil).Once()
	suite.mockJournalRepo.On("SaveVoucher", mock.Anything, int64(100001), mock.Anything, []int64{2}).Return(nil).Once()

	secondNo, err := suite.service.SaveVoucher(context.Background(), second, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(firstNo+1, secondNo)
}

func (suite *BookingServiceTestSuite) TestAcknowledge_ResetsSession() {
	session := domain.NewDraftSession()
	suite.startDraft(session, suite.pendingClaim(1, "60.00"))
	suite.balance(session)

	suite.mockJournalRepo.On("MaxVoucherNo", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("SaveVoucher", mock.Anything, int64(100000), mock.Anything, []int64{1}).Return(nil).Once()

	_, err := suite.service.SaveVoucher(context.Background(), session, suite.userID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Acknowledge(session))
	suite.Equal(domain.StateSelecting, session.State)
	suite.Empty(session.Lines)

	suite.ErrorIs(suite.service.Acknowledge(session), apperrors.ErrInvalidOperation)
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}
