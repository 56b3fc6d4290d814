package service

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/export"
)

const (
	planColumnDiscipline = "Дисциплина"
	planColumnGroup      = "Группа"
	planColumnStart      = "Начальный семестр"
	planColumnEnd        = "Конечный семестр"
)

type planDirectionReader interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Direction, error)
}

type planDisciplineReader interface {
	ListByDirectionIDs(ctx context.Context, directionIDs []int64) ([]models.Discipline, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders a direction's study plan as a downloadable file.
type ExportService struct {
	directions  planDirectionReader
	disciplines planDisciplineReader
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// package defaults.
func NewExportService(directions planDirectionReader, disciplines planDisciplineReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{directions: directions, disciplines: disciplines, csv: csv, pdf: pdf, logger: logger}
}

// StudyPlan renders the disciplines of one direction.
func (s *ExportService) StudyPlan(ctx context.Context, directionID int64, format dto.ExportFormat) (*dto.ExportFile, error) {
	if format == "" {
		format = dto.ExportFormatCSV
	}
	if format != dto.ExportFormatCSV && format != dto.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	direction, err := s.directions.FindByID(ctx, nil, directionID)
	if err != nil {
		return nil, lookupError(err, "direction not found", "failed to load direction")
	}
	disciplines, err := s.disciplines.ListByDirectionIDs(ctx, []int64{directionID})
	if err != nil {
		return nil, checkFailed(err, "failed to load disciplines")
	}

	dataset := planDataset(disciplines)
	var (
		content     []byte
		contentType string
	)
	switch format {
	case dto.ExportFormatPDF:
		content, err = s.pdf.Render(dataset, direction.Name)
		contentType = "application/pdf"
	default:
		content, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		s.logger.Error("failed to render study plan", zap.Int64("direction_id", directionID), zap.String("format", string(format)), zap.Error(err))
		return nil, checkFailed(err, "failed to render study plan")
	}

	return &dto.ExportFile{
		Filename:    export.Filename(direction.Name, string(format)),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func planDataset(disciplines []models.Discipline) export.Dataset {
	rows := make([]map[string]string, 0, len(disciplines))
	for _, d := range disciplines {
		rows = append(rows, map[string]string{
			planColumnDiscipline: d.Name,
			planColumnGroup:      d.Group,
			planColumnStart:      strconv.Itoa(d.StartTerm),
			planColumnEnd:        strconv.Itoa(d.EndTerm),
		})
	}
	return export.Dataset{
		Headers: []string{planColumnDiscipline, planColumnGroup, planColumnStart, planColumnEnd},
		Rows:    rows,
	}
}
