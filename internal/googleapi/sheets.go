package googleapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autopost/internal/sheet"
)

const gridFields = "sheets(data(rowData(values(formattedValue,hyperlink,userEnteredValue(stringValue),textFormatRuns(startIndex,format(link(uri)))))))"

type gridResponse struct {
	Sheets []struct {
		Data []struct {
			RowData []struct {
				Values []gridCell `json:"values"`
			} `json:"rowData"`
		} `json:"data"`
	} `json:"sheets"`
}

type gridCell struct {
	FormattedValue   string `json:"formattedValue"`
	Hyperlink        string `json:"hyperlink"`
	UserEnteredValue struct {
		StringValue string `json:"stringValue"`
	} `json:"userEnteredValue"`
	TextFormatRuns []struct {
		StartIndex int `json:"startIndex"`
		Format     struct {
			Link struct {
				URI string `json:"uri"`
			} `json:"link"`
		} `json:"format"`
	} `json:"textFormatRuns"`
}

// FetchGrid downloads the first sheet of a spreadsheet with cell-level
// hyperlink data.
func (c *Client) FetchGrid(ctx context.Context, spreadsheetID string) (*sheet.Grid, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id required")
	}
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?includeGridData=true&fields=%s", c.sheetsBaseURL, spreadsheetID, gridFields)

	var payload gridResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(payload.Sheets) == 0 || len(payload.Sheets[0].Data) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no grid data", spreadsheetID)
	}

	grid := &sheet.Grid{}
	for _, rowData := range payload.Sheets[0].Data[0].RowData {
		row := sheet.Row{}
		for _, raw := range rowData.Values {
			row.Cells = append(row.Cells, decodeCell(raw))
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func decodeCell(raw gridCell) sheet.Cell {
	cell := sheet.Cell{
		Value:     raw.FormattedValue,
		Hyperlink: raw.Hyperlink,
	}
	if cell.Value == "" {
		cell.Value = raw.UserEnteredValue.StringValue
	}
	if len(raw.TextFormatRuns) == 0 {
		return cell
	}

	// Run boundaries index into the cell's entered text. Slice by rune so
	// multibyte characters do not split a run mid-sequence.
	text := []rune(raw.UserEnteredValue.StringValue)
	for i, run := range raw.TextFormatRuns {
		start := run.StartIndex
		end := len(text)
		if i+1 < len(raw.TextFormatRuns) {
			end = raw.TextFormatRuns[i+1].StartIndex
		}
		if start < 0 || start > len(text) {
			continue
		}
		if end > len(text) {
			end = len(text)
		}
		cell.Runs = append(cell.Runs, sheet.TextRun{
			Text: string(text[start:end]),
			Link: run.Format.Link.URI,
		})
	}
	return cell
}

// MarkOnline sets the boolean cell at the given 1-based row and column to
// TRUE via a batch update.
func (c *Client) MarkOnline(ctx context.Context, spreadsheetID string, row, col int) error {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return errors.New("spreadsheet id required")
	}
	if row < 1 || col < 1 {
		return fmt.Errorf("cell position %d,%d out of range", row, col)
	}

	body := map[string]any{
		"requests": []any{
			map[string]any{
				"updateCells": map[string]any{
					"start": map[string]any{
						"sheetId":     0,
						"rowIndex":    row - 1,
						"columnIndex": col - 1,
					},
					"rows": []any{
						map[string]any{
							"values": []any{
								map[string]any{
									"userEnteredValue": map[string]any{"boolValue": true},
								},
							},
						},
					},
					"fields": "userEnteredValue",
				},
			},
		},
	}
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s:batchUpdate", c.sheetsBaseURL, spreadsheetID)
	if err := c.postJSON(ctx, endpoint, body); err != nil {
		return fmt.Errorf("mark row %d online: %w", row, err)
	}
	return nil
}
