package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/resume-ranker/internal/models"
)

const (
	CSVFilename  = "ranked_resumes.csv"
	XLSXFilename = "ranked_resumes.xlsx"

	xlsxSheet = "Ranking"
)

var csvHeader = []string{"Resume", "Score"}

// WriteCSV writes the report as "Resume,Score" rows in report order.
func WriteCSV(w io.Writer, report *models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, res := range report.Results {
		if err := cw.Write([]string{res.Name, FormatScore(res.Score)}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]models.ScoredResume, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: missing header")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !strings.EqualFold(strings.TrimPrefix(header[0], "\ufeff"), csvHeader[0]) || !strings.EqualFold(header[1], csvHeader[1]) {
		return nil, fmt.Errorf("unexpected csv header: %v", header)
	}

	var rows []models.ScoredResume
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		score, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score %q for %s: %w", record[1], record[0], err)
		}

		rows = append(rows, models.ScoredResume{
			Name:     record[0],
			Score:    score,
			Rank:     len(rows) + 1,
			Position: len(rows),
		})
	}

	return rows, nil
}

// FormatScore renders a score as a plain decimal fraction. Integral values
// keep one decimal place so 0 is written as 0.0.
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// WriteXLSX returns the report as an XLSX workbook.
func WriteXLSX(report *models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Rank", "Resume", "Score", "Match %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(xlsxSheet, cell, h)
	}

	for i, res := range report.Results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(xlsxSheet, cell, v)
		}

		write(1, res.Rank)
		write(2, res.Name)
		write(3, res.Score)
		write(4, res.Percent())
	}

	_ = f.SetColWidth(xlsxSheet, "A", "A", 8)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 40)
	_ = f.SetColWidth(xlsxSheet, "C", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
