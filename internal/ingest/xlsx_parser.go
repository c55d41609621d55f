package ingest

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first worksheet only, per spec §4.6 step 5.
func parseXLSX(raw []byte) (*Table, []MultiValueColumn, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, &InvalidFileFormatError{Reason: "not a valid XLSX workbook: " + err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &InvalidFileFormatError{Reason: "workbook has no sheets"}
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, &InvalidFileFormatError{Reason: "failed reading sheet: " + err.Error()}
	}
	if len(rows) == 0 {
		return nil, nil, &InvalidFileFormatError{Reason: "sheet has no rows"}
	}

	headers := rows[0]
	width := len(headers)
	dataRows := make([][]string, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		row := make([]string, width)
		copy(row, rec)
		dataRows = append(dataRows, row)
	}

	table := &Table{Headers: headers, Rows: dataRows}
	mv := detectMultiValueColumns(table, 0)
	return table, mv, nil
}
