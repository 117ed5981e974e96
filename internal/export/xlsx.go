package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Logs"

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}

		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
