package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"goldenticket-service/internal/database/minio"
	"goldenticket-service/internal/repository"
)

// ExportResult points at a generated export file in object storage.
type ExportResult struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

// ExportService generates the winners files handed to the operations team:
// CSV for spreadsheets, PDF for print. Files land in the exports bucket and
// are served through short-lived presigned links.
type ExportService struct {
	winRepo     repository.WinRepository
	minioClient *minio.MinioClient
}

func NewExportService(winRepo repository.WinRepository, minioClient *minio.MinioClient) *ExportService {
	return &ExportService{
		winRepo:     winRepo,
		minioClient: minioClient,
	}
}

func (s *ExportService) ExportWinnersCSV(ctx context.Context, periodID uuid.UUID) (*ExportResult, error) {
	winners, err := s.winRepo.ListWinners(ctx, periodID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"first_name", "last_name", "email", "phone_number", "prize", "source", "won_at"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, w := range winners {
		record := []string{
			w.FirstName,
			w.LastName,
			w.Email,
			w.PhoneNumber,
			w.PrizeTitle,
			string(w.Source),
			w.WonAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	objectName := fmt.Sprintf("winners/%s/%d.csv", periodID, time.Now().Unix())
	return s.store(ctx, objectName, buf.Bytes(), "text/csv")
}

func (s *ExportService) ExportWinnersPDF(ctx context.Context, periodID uuid.UUID) (*ExportResult, error) {
	winners, err := s.winRepo.ListWinners(ctx, periodID)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(winners)+1)
	lines = append(lines, fmt.Sprintf("Liste des gagnants - %s", time.Now().Format("02/01/2006")))
	for _, w := range winners {
		lines = append(lines, fmt.Sprintf("%s %s - %s - %s (%s)",
			w.FirstName, w.LastName, w.Email, w.PrizeTitle, w.Source))
	}

	pdfBytes, err := renderTextPDF(lines)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("winners/%s/%d.pdf", periodID, time.Now().Unix())
	return s.store(ctx, objectName, pdfBytes, "application/pdf")
}

func (s *ExportService) store(ctx context.Context, objectName string, data []byte, contentType string) (*ExportResult, error) {
	if err := s.minioClient.UploadBytes(ctx, minio.Storage.Exports, objectName, data, contentType); err != nil {
		return nil, err
	}

	url, err := s.minioClient.GetPresignedURL(ctx, minio.Storage.Exports, objectName, time.Hour)
	if err != nil {
		return nil, err
	}

	return &ExportResult{ObjectName: objectName, URL: url}, nil
}

// renderTextPDF lays the lines out top-down on A4 pages using pdfcpu's JSON
// create spec, 40 lines per page.
func renderTextPDF(lines []string) ([]byte, error) {
	const linesPerPage = 40

	pages := map[string]any{}
	pageNo := 0
	for start := 0; start < len(lines); start += linesPerPage {
		pageNo++
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}

		texts := make([]map[string]any, 0, end-start)
		for i, line := range lines[start:end] {
			texts = append(texts, map[string]any{
				"value":    line,
				"anchor":   "tl",
				"dx":       40,
				"dy":       -40 - i*18,
				"font":     map[string]any{"name": "Helvetica", "size": 10},
				"position": []int{0, 0},
			})
		}

		pages[fmt.Sprintf("%d", pageNo)] = map[string]any{
			"content": map[string]any{"text": texts},
		}
	}
	if pageNo == 0 {
		pages["1"] = map[string]any{"content": map[string]any{"text": []map[string]any{}}}
	}

	spec, err := json.Marshal(map[string]any{
		"pages": pages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal PDF spec: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &out, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return out.Bytes(), nil
}
