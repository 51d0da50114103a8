package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
	"github.com/HPG21/czp-releases/internal/core/services"
	"github.com/HPG21/czp-releases/internal/dto"
	"github.com/HPG21/czp-releases/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CalculationServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockCalculationRepository
	mockSettings *MockSettingsRepository
	settings     domain.Settings
	service      portssvc.CalculationSvcFacade
}

func (suite *CalculationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCalculationRepository)
	suite.mockSettings = new(MockSettingsRepository)
	suite.settings = domain.DefaultSettings("user-1")
	suite.mockSettings.On("FindSettings", mock.Anything, "user-1").Return(&suite.settings, nil).Maybe()

	ids := 0
	suite.service = services.NewCalculationService(
		suite.mockRepo,
		services.WithSettingsReader(services.NewSettingsService(suite.mockSettings)),
		services.WithCalculationClock(fixedClock),
		services.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("calc-%d", ids)
		}),
	)
}

func createRequest() dto.CreateCalculationRequest {
	return dto.CreateCalculationRequest{
		Year:  2025,
		Month: 3,
		CalculationInputsRequest: dto.CalculationInputsRequest{
			QuarterlyNormHours: 480,
			BaseSalaryAmount:   f64(100000),
			RegularHours:       160,
			NightHours:         20,
		},
	}
}

func (suite *CalculationServiceTestSuite) TestCreateCalculation_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindCalculationByMonth", ctx, "user-1", 2025, time.March).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCalculation", ctx, mock.MatchedBy(func(r domain.CalculationRecord) bool {
		return r.ID == "calc-1" && r.UserID == "user-1" && r.Date.Equal(monthOf(2025, time.March))
	})).Return(nil).Once()

	rec, err := suite.service.CreateCalculation(ctx, "user-1", createRequest())

	suite.Require().NoError(err)
	suite.Equal(13.0, rec.TaxRatePercent, "tax rate comes from settings")
	suite.Equal(625.0, rec.HourlyRate)
	suite.Equal(543.75, rec.NetHourlyRate)
	suite.Equal(87000.0, rec.RegularPayNet)
	suite.Equal(4350.0, rec.NightPayNet)
	suite.Equal(91350.0, rec.TotalPayNet)
	suite.Equal(fixedNow, rec.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CalculationServiceTestSuite) TestCreateCalculation_UsesDefaultBaseSalary() {
	ctx := context.Background()
	suite.settings.BaseSalaryEnabled = true
	suite.settings.BaseSalaryAmount = f64(96000)
	suite.settings.TaxRatePercent = 15
	suite.mockRepo.On("FindCalculationByMonth", ctx, "user-1", 2025, time.March).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCalculation", ctx, mock.AnythingOfType("domain.CalculationRecord")).Return(nil).Once()

	req := createRequest()
	req.BaseSalaryAmount = nil
	rec, err := suite.service.CreateCalculation(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal(96000.0, rec.BaseSalaryAmount)
	suite.Equal(15.0, rec.TaxRatePercent)
}

func (suite *CalculationServiceTestSuite) TestCreateCalculation_MissingBaseSalary() {
	ctx := context.Background()
	req := createRequest()
	req.BaseSalaryAmount = nil

	rec, err := suite.service.CreateCalculation(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCalculation", mock.Anything, mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestCreateCalculation_DuplicateMonth() {
	ctx := context.Background()
	existing := record("old", monthOf(2025, time.March), 90000)
	suite.mockRepo.On("FindCalculationByMonth", ctx, "user-1", 2025, time.March).Return(&existing, nil).Once()

	rec, err := suite.service.CreateCalculation(ctx, "user-1", createRequest())

	suite.Require().Error(err)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCalculation", mock.Anything, mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestCreateCalculation_InvalidComposition() {
	ctx := context.Background()
	suite.mockRepo.On("FindCalculationByMonth", ctx, "user-1", 2025, time.March).Return(nil, apperrors.ErrNotFound).Once()

	req := createRequest()
	req.NightHours = 150
	req.HolidayHours = 20

	_, err := suite.service.CreateCalculation(ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CalculationServiceTestSuite) TestCreateCalculation_SaveError() {
	ctx := context.Background()
	suite.mockRepo.On("FindCalculationByMonth", ctx, "user-1", 2025, time.March).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCalculation", ctx, mock.AnythingOfType("domain.CalculationRecord")).Return(assert.AnError).Once()

	rec, err := suite.service.CreateCalculation(ctx, "user-1", createRequest())

	suite.Nil(rec)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *CalculationServiceTestSuite) TestPreviewCalculation() {
	ctx := context.Background()
	in, breakdown, err := suite.service.PreviewCalculation(ctx, "user-1", dto.PreviewCalculationRequest{
		CalculationInputsRequest: createRequest().CalculationInputsRequest,
	})

	suite.Require().NoError(err)
	suite.Equal(13.0, in.TaxRatePercent)
	suite.Equal(100000.0, breakdown.RegularPayGross)
	suite.Equal(105000.0, breakdown.TotalPayGross)
	suite.Equal(91350.0, breakdown.TotalPayNet)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCalculation", mock.Anything, mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestGetCalculation_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCalculationByID", ctx, "user-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	rec, err := suite.service.GetCalculation(ctx, "user-1", "missing")

	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CalculationServiceTestSuite) TestListCalculations_Paginates() {
	ctx := context.Background()
	page := []domain.CalculationRecord{
		record("c3", monthOf(2025, time.March), 100000),
		record("c2", monthOf(2025, time.February), 100000),
		record("c1", monthOf(2025, time.January), 100000),
	}
	suite.mockRepo.On("ListCalculationsPage", ctx, "user-1", 3, (*time.Time)(nil)).Return(page, nil).Once()

	resp, err := suite.service.ListCalculations(ctx, "user-1", dto.ListCalculationsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(resp.Calculations, 2)
	suite.Require().NotNil(resp.NextToken)
	before, err := pagination.DecodeDateBasedToken(*resp.NextToken)
	suite.Require().NoError(err)
	suite.True(before.Equal(monthOf(2025, time.February)))

	// Second page
	suite.mockRepo.On("ListCalculationsPage", ctx, "user-1", 3, mock.MatchedBy(func(b *time.Time) bool {
		return b != nil && b.Equal(monthOf(2025, time.February))
	})).Return(page[2:], nil).Once()

	resp, err = suite.service.ListCalculations(ctx, "user-1", dto.ListCalculationsParams{Limit: 2, NextToken: resp.NextToken})

	suite.Require().NoError(err)
	suite.Len(resp.Calculations, 1)
	suite.Nil(resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CalculationServiceTestSuite) TestListCalculations_InvalidToken() {
	token := "not base64!"
	_, err := suite.service.ListCalculations(context.Background(), "user-1", dto.ListCalculationsParams{NextToken: &token})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CalculationServiceTestSuite) TestUpdateCalculation_Recomputes() {
	ctx := context.Background()
	created := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	existing := record("c1", monthOf(2025, time.March), 100000)
	existing.CreatedAt = created
	suite.mockRepo.On("FindCalculationByID", ctx, "user-1", "c1").Return(&existing, nil).Once()
	suite.mockRepo.On("UpdateCalculation", ctx, mock.AnythingOfType("domain.CalculationRecord")).Return(nil).Once()

	rec, err := suite.service.UpdateCalculation(ctx, "user-1", "c1", dto.UpdateCalculationRequest{TaxRatePercent: f64(15)})

	suite.Require().NoError(err)
	suite.Equal("c1", rec.ID)
	suite.Equal(created, rec.CreatedAt)
	suite.Equal(fixedNow, rec.LastUpdatedAt)
	suite.Equal(15.0, rec.TaxRatePercent)
	suite.Equal(531.25, rec.NetHourlyRate)
	suite.Equal(85000.0, rec.TotalPayNet)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CalculationServiceTestSuite) TestDeleteCalculation() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteCalculation", ctx, "user-1", "c1").Return(nil).Once()
	suite.mockRepo.On("DeleteCalculation", ctx, "user-1", "missing").Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteCalculation(ctx, "user-1", "c1"))
	suite.ErrorIs(suite.service.DeleteCalculation(ctx, "user-1", "missing"), apperrors.ErrNotFound)
}

func (suite *CalculationServiceTestSuite) TestClearHistory() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAllCalculations", ctx, "user-1").Return(int64(4), nil).Once()

	deleted, err := suite.service.ClearHistory(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(4), deleted)
}

func (suite *CalculationServiceTestSuite) TestGroupedHistory_FiltersYear() {
	ctx := context.Background()
	suite.mockRepo.On("ListCalculations", ctx, "user-1").Return([]domain.CalculationRecord{
		record("a", monthOf(2024, time.November), 100000),
		record("b", monthOf(2025, time.January), 100000),
		record("c", monthOf(2025, time.May), 100000),
	}, nil).Once()

	year := 2025
	years, err := suite.service.GroupedHistory(ctx, "user-1", &year)

	suite.Require().NoError(err)
	suite.Require().Len(years, 1)
	suite.Equal(2025, years[0].Year)
	suite.Len(years[0].Quarters, 2)
	suite.Equal(2, years[0].Quarters[0].Quarter)
}

func (suite *CalculationServiceTestSuite) TestExportHistory() {
	ctx := context.Background()
	suite.mockRepo.On("ListCalculations", ctx, "user-1").Return([]domain.CalculationRecord{
		record("a", monthOf(2025, time.January), 100000),
	}, nil).Once()

	export, err := suite.service.ExportHistory(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(dto.HistoryExportVersion, export.Version)
	suite.Equal(fixedNow, export.ExportedAt)
	suite.Require().Len(export.Calculations, 1)
	suite.Equal("2025-01-01", export.Calculations[0].Date)
}

func (suite *CalculationServiceTestSuite) TestImportHistory_SkipsExistingMonths() {
	ctx := context.Background()
	suite.mockRepo.On("ListCalculations", ctx, "user-1").Return([]domain.CalculationRecord{
		record("a", monthOf(2025, time.January), 100000),
	}, nil).Once()
	suite.mockRepo.On("SaveCalculations", ctx, mock.MatchedBy(func(recs []domain.CalculationRecord) bool {
		return len(recs) == 1 && recs[0].Date.Equal(monthOf(2025, time.February)) && recs[0].TotalPayNet == 87000
	})).Return(nil).Once()

	row := dto.CalculationTransfer{QuarterlyNormHours: 480, BaseSalaryAmount: 100000, RegularHours: 160, TaxRatePercent: 13}
	jan, feb, febAgain := row, row, row
	jan.Date = "2025-01-15"
	feb.Date = "2025-02-01"
	febAgain.Date = "2025-02-20"

	resp, err := suite.service.ImportHistory(ctx, "user-1", dto.ImportHistoryRequest{
		Calculations: []dto.CalculationTransfer{jan, feb, febAgain},
	})

	suite.Require().NoError(err)
	suite.Equal(1, resp.Imported)
	suite.Equal(2, resp.Skipped)
	suite.Equal([]string{"2025-01", "2025-02"}, resp.SkippedMonths)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CalculationServiceTestSuite) TestImportHistory_RejectsInvalidRow() {
	ctx := context.Background()
	suite.mockRepo.On("ListCalculations", ctx, "user-1").Return([]domain.CalculationRecord{}, nil).Once()

	row := dto.CalculationTransfer{Date: "2025-01-01", QuarterlyNormHours: 480, BaseSalaryAmount: 100000, RegularHours: 10, NightHours: 20, TaxRatePercent: 13}

	_, err := suite.service.ImportHistory(ctx, "user-1", dto.ImportHistoryRequest{Calculations: []dto.CalculationTransfer{row}})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCalculations", mock.Anything, mock.Anything)
}

func TestCalculationService(t *testing.T) {
	suite.Run(t, new(CalculationServiceTestSuite))
}
