package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"livestock-service/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the farm's herd register as an xlsx workbook for
// offline record keeping.
type ExportService struct {
	animalRepo  repository.IAnimalRepository
	farmService IFarmService
}

func NewExportService(animalRepo repository.IAnimalRepository, farmService IFarmService) *ExportService {
	return &ExportService{
		animalRepo:  animalRepo,
		farmService: farmService,
	}
}

var herdRegisterHeaders = []string{
	"หมายเลขแท็ก", "ชื่อ", "ประเภท", "เพศ", "สถานะ",
	"วันเกิด", "สี", "น้ำหนัก (กก.)", "ส่วนสูง (ซม.)",
	"แท็กแม่", "แท็กพ่อ",
}

func (s *ExportService) HerdRegister(ctx context.Context, userID string) ([]byte, string, error) {
	farm, err := s.farmService.GetOwnedFarm(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	animals, err := s.animalRepo.ListByFarm(ctx, farm.ID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, header := range herdRegisterHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, animal := range animals {
		row := i + 2
		values := []any{
			animal.TagID,
			deref(animal.Name),
			string(animal.Type),
			string(animal.Gender),
			string(animal.Status),
			formatDate(animal.BirthDate),
			deref(animal.Color),
			derefFloat(animal.WeightKg),
			derefInt(animal.HeightCm),
			deref(animal.MotherTag),
			deref(animal.FatherTag),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("herd-register-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func derefInt(i *int) any {
	if i == nil {
		return ""
	}
	return *i
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
