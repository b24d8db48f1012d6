package reports

import (
	"encoding/csv"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"CPCPerform/api/constants"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// csvSheetName labels single-table delimited input, which has no sheet of its own.
const csvSheetName = "CSV"

func fileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ParseUpload reads an uploaded file into raw sheets keyed by sheet name: one
// synthetic sheet for delimited input, every sheet of a workbook otherwise.
// Sheets that fail to read are dropped; the upload only fails when nothing is
// readable at all.
func ParseUpload(file multipart.File, filename string) ([]RawSheet, error) {
	switch fileExt(filename) {
	case ".csv":
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil {
			return nil, err
		}
		return []RawSheet{{Name: csvSheetName, Cells: records}}, nil
	case ".xlsx":
		return parseXLSX(file)
	case ".xls":
		return parseXLS(file)
	}
	return nil, errors.New(constants.ErrUnsupportedFileType)
}

func parseXLSX(file multipart.File) ([]RawSheet, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := make([]RawSheet, 0, len(f.GetSheetList()))
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		sheets = append(sheets, RawSheet{Name: name, Cells: rows})
	}
	if len(sheets) == 0 {
		return nil, errors.New(constants.ErrEmptyWorkbook)
	}
	return sheets, nil
}

func parseXLS(file multipart.File) ([]RawSheet, error) {
	wb, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, err
	}

	sheets := make([]RawSheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		cells := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				cells = append(cells, nil)
				continue
			}
			line := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				line = append(line, row.Col(c))
			}
			cells = append(cells, line)
		}
		sheets = append(sheets, RawSheet{Name: sheet.Name, Cells: cells})
	}
	if len(sheets) == 0 {
		return nil, errors.New(constants.ErrEmptyWorkbook)
	}
	return sheets, nil
}
