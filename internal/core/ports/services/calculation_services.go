package services

import (
	"context"

	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/dto"
)

// CalculationReaderSvc defines read operations over a user's salary history
type CalculationReaderSvc interface {
	// GetCalculation returns apperrors.ErrNotFound when the record is missing or owned by someone else.
	GetCalculation(ctx context.Context, userID, calculationID string) (*domain.CalculationRecord, error)

	// ListCalculations returns one page of the history, newest month first.
	ListCalculations(ctx context.Context, userID string, params dto.ListCalculationsParams) (*dto.ListCalculationsResponse, error)

	// GroupedHistory groups the history by year and quarter, optionally for a single year.
	GroupedHistory(ctx context.Context, userID string, year *int) ([]domain.HistoryYear, error)

	// ExportHistory returns every record of the user.
	ExportHistory(ctx context.Context, userID string) (*dto.HistoryExport, error)
}

// CalculationWriterSvc defines write operations over a user's salary history
type CalculationWriterSvc interface {
	// CreateCalculation computes and stores a new record. Returns apperrors.ErrDuplicate
	// when the month is already present.
	CreateCalculation(ctx context.Context, userID string, req dto.CreateCalculationRequest) (*domain.CalculationRecord, error)

	// UpdateCalculation replaces the inputs of a record and recomputes every derived field.
	UpdateCalculation(ctx context.Context, userID, calculationID string, req dto.UpdateCalculationRequest) (*domain.CalculationRecord, error)

	DeleteCalculation(ctx context.Context, userID, calculationID string) error

	// ClearHistory removes every record of the user and returns how many were deleted.
	ClearHistory(ctx context.Context, userID string) (int64, error)

	// ImportHistory recomputes and stores exported records, skipping months already present.
	ImportHistory(ctx context.Context, userID string, req dto.ImportHistoryRequest) (*dto.ImportHistoryResponse, error)
}

// CalculatorSvc runs the calculator without touching storage
type CalculatorSvc interface {
	PreviewCalculation(ctx context.Context, userID string, req dto.PreviewCalculationRequest) (domain.Inputs, domain.Breakdown, error)
}

// CalculationSvcFacade combines all calculation-related service interfaces
type CalculationSvcFacade interface {
	CalculationReaderSvc
	CalculationWriterSvc
	CalculatorSvc
}
