package sheets

import (
	"bytes"
	"testing"

	"github.com/ssugameworks/brevets/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	submissions := []models.Submission{
		{
			BrevetKm:  200,
			BeginDate: "2018-11-17T06:00:00+00:00",
			Controls: []models.Control{
				{Km: 0, Miles: 0, Location: "Start", Open: "2018-11-17T06:00:00+00:00", Close: "2018-11-17T07:00:00+00:00"},
				{Km: 200, Miles: 124.3, Location: "Finish", Open: "2018-11-17T11:53:00+00:00", Close: "2018-11-17T19:30:00+00:00"},
			},
		},
		{
			BrevetKm:  600,
			BeginDate: "2018-11-17T06:00:00+00:00",
			Controls: []models.Control{
				{Km: 570, Miles: 354.2, Open: "2018-11-17T23:48:00+00:00", Close: "2018-11-18T20:00:00+00:00"},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, submissions); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "#1 200km" || sheets[1] != "#2 600km" {
		t.Fatalf("sheet list = %v", sheets)
	}

	tests := []struct {
		sheet, cell, expected string
	}{
		{"#1 200km", "B1", "200"},
		{"#1 200km", "B2", "2018-11-17T06:00:00+00:00"},
		{"#1 200km", "A4", "Km"},
		{"#1 200km", "E4", "Close"},
		{"#1 200km", "C5", "Start"},
		{"#1 200km", "B6", "124.3"},
		{"#1 200km", "D6", "2018-11-17T11:53:00+00:00"},
		{"#2 600km", "A5", "570"},
		{"#2 600km", "E5", "2018-11-18T20:00:00+00:00"},
	}
	for _, test := range tests {
		got, err := f.GetCellValue(test.sheet, test.cell)
		if err != nil {
			t.Errorf("GetCellValue(%s, %s) error: %v", test.sheet, test.cell, err)
			continue
		}
		if got != test.expected {
			t.Errorf("%s!%s = %q, expected %q", test.sheet, test.cell, got, test.expected)
		}
	}
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, nil); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Schedules" {
		t.Fatalf("sheet list = %v", sheets)
	}
	if got, _ := f.GetCellValue("Schedules", "A1"); got != "Km" {
		t.Errorf("A1 = %q, expected header", got)
	}
}
