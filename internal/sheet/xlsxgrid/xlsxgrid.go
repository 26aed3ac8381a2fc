// Package xlsxgrid loads a local .xlsx export of the editorial spreadsheet
// into the sheet grid model. Run-level links do not survive the xlsx export,
// so cells loaded here carry whole-cell hyperlinks and display text only.
package xlsxgrid

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"autopost/internal/sheet"
)

// Load reads the named worksheet into a grid. An empty sheetName selects the
// workbook's first sheet.
func Load(path, sheetName string) (*sheet.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	grid := &sheet.Grid{Rows: make([]sheet.Row, 0, len(rows))}
	for rowIdx, row := range rows {
		cells := make([]sheet.Cell, len(row))
		for colIdx, value := range row {
			cell := sheet.Cell{Value: value}
			if value != "" {
				cellName, nameErr := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if nameErr == nil {
					if hasLink, target, linkErr := f.GetCellHyperLink(sheetName, cellName); linkErr == nil && hasLink && target != "" {
						cell.Hyperlink = target
					}
				}
			}
			cells[colIdx] = cell
		}
		grid.Rows = append(grid.Rows, sheet.Row{Cells: cells})
	}
	return grid, nil
}
