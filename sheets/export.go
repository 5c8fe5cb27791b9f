// Package sheets 제출된 컨트롤 스케줄을 xlsx 통합 문서로 내보냅니다.
package sheets

import (
	"fmt"
	"io"

	"github.com/ssugameworks/brevets/models"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	emptySheet   = "Schedules"
	tableRow     = 4 // 컨트롤 표 헤더 행
)

var columnHeaders = []string{"Km", "Miles", "Location", "Open", "Close"}

// SheetName 제출 순번과 브레베 거리로 시트 이름을 만듭니다
func SheetName(index int, submission models.Submission) string {
	return fmt.Sprintf("#%d %gkm", index+1, submission.BrevetKm)
}

// BuildWorkbook 제출마다 시트 하나를 가진 통합 문서를 만듭니다
func BuildWorkbook(submissions []models.Submission) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if len(submissions) == 0 {
		if err := f.SetSheetName(defaultSheet, emptySheet); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeHeaderRow(f, emptySheet, 1, bold); err != nil {
			f.Close()
			return nil, err
		}
		return f, nil
	}

	for i, submission := range submissions {
		name := SheetName(i, submission)
		if i == 0 {
			err = f.SetSheetName(defaultSheet, name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			f.Close()
			return nil, err
		}

		if err := writeSubmission(f, name, submission, bold); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook 통합 문서를 w에 기록합니다
func WriteWorkbook(w io.Writer, submissions []models.Submission) error {
	f, err := BuildWorkbook(submissions)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func writeSubmission(f *excelize.File, sheet string, submission models.Submission, bold int) error {
	meta := [][]interface{}{
		{"Brevet (km)", submission.BrevetKm},
		{"Start", submission.BeginDate},
	}
	for i, row := range meta {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "A2", bold); err != nil {
		return err
	}

	if err := writeHeaderRow(f, sheet, tableRow, bold); err != nil {
		return err
	}

	for i, control := range submission.Controls {
		row := []interface{}{control.Km, control.Miles, control.Location, control.Open, control.Close}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", tableRow+1+i), &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "C", "E", 28)
}

func writeHeaderRow(f *excelize.File, sheet string, row int, bold int) error {
	headers := make([]interface{}, len(columnHeaders))
	for i, h := range columnHeaders {
		headers[i] = h
	}

	start := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(sheet, start, &headers); err != nil {
		return err
	}

	end, err := excelize.CoordinatesToCellName(len(columnHeaders), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, bold)
}
