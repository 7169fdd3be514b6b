package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one sheet of an .xlsx workbook into a Dataset. If sheetName
// is empty the first sheet is used. The first row is the header.
func LoadXLSX(path, sheetName string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return New(filepath.Base(path), nil, nil), nil
		}
		sheetName = sheets[0]
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return New(filepath.Base(path), nil, nil), nil
	}
	return New(filepath.Base(path), rows[0], rows[1:]), nil
}
