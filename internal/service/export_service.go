package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/models"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
	"github.com/noah-isme/campus-enroll-api/pkg/export"
)

// ExportFormat enumerates supported schedule export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered document and its transport metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders weekly schedules as downloadable documents.
type ExportService struct {
	timetable *TimetableService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(timetable *TimetableService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetable: timetable,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// Schedule renders the user's weekly grid in the requested format.
func (s *ExportService) Schedule(ctx context.Context, userID string, includeTeaching bool, format ExportFormat) (*ExportResult, error) {
	activities, err := s.timetable.Activities(ctx, userID, includeTeaching)
	if err != nil {
		return nil, err
	}

	cfg := s.timetable.Config()
	grid := models.BuildTimetableGrid(activities, cfg.Days, cfg.Slots)
	dataset := gridDataset(grid)

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "schedule.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, "Weekly Schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "schedule.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// gridDataset flattens the grid into one row per slot anchor, one column
// per day, matching the on-screen layout.
func gridDataset(grid *models.TimetableGrid) export.Dataset {
	days := grid.Days()
	headers := make([]string, 0, len(days)+1)
	headers = append(headers, "Time")
	for _, day := range days {
		headers = append(headers, string(day))
	}

	slots := grid.Slots()
	rows := make([]map[string]string, 0, len(slots))
	for i, slot := range slots {
		row := map[string]string{"Time": slot.String()}
		for _, day := range days {
			activity, ok := grid.Cell(day, i)
			if !ok {
				continue
			}
			parts := []string{activity.Code}
			if activity.Room != "" {
				parts = append(parts, activity.Room)
			}
			row[string(day)] = strings.Join(parts, " ")
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
