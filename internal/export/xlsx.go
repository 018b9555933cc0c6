// Package export renders project listings as spreadsheet downloads.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

const (
	SheetName   = "Projects"
	FileName    = "research_projects.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// numFmtTwoDecimals is the built-in "0.00" number format.
	numFmtTwoDecimals = 2
)

var columns = []string{
	"Project_ID",
	"Project_Title",
	"Project_Leader",
	"Project_Staff",
	"Starting_Date",
	"Completion_Date",
	"Budget",
	"Fund_Source",
	"Location",
	"Type_of_Research",
	"Status",
	"Remarks",
}

// Headers returns the display headers: column names with underscores replaced
// by spaces, upper-cased.
func Headers() []string {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(strings.ReplaceAll(c, "_", " "))
	}
	return headers
}

// WriteProjects writes projects as a single-sheet workbook to w, one row per
// project in the given order.
func WriteProjects(w io.Writer, projects []*domain.Project) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	budgetStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("budget style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	headers := Headers()
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, p := range projects {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			p.ID,
			p.Title,
			p.Leader,
			p.Staff,
			p.StartDate,
			p.CompletionDate,
			excelize.Cell{StyleID: budgetStyle, Value: p.Budget},
			p.FundSource,
			p.Location,
			p.ResearchType,
			string(p.Status),
			p.Remarks,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", p.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
