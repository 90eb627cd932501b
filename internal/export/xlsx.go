package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"epichart/internal/charts"
)

// SheetName is the worksheet holding the exported series
const SheetName = "趋势"

var header = []interface{}{"日期", "确诊", "疑似", "治愈", "死亡"}

// WriteWorkbook writes the view's four series as one xlsx sheet, one row per date.
// Dates are written as 2006-01-02 when the key is a yyyymmdd date.
func WriteWorkbook(w io.Writer, v charts.View) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := wb.SetCellValue(SheetName, "G1", "地区"); err != nil {
		return err
	}
	if err := wb.SetCellValue(SheetName, "H1", v.Area); err != nil {
		return err
	}
	if err := wb.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	s := v.Series
	for i := 0; i < s.Len(); i++ {
		row := []interface{}{
			charts.FormatDate(s.Confirmed[i].Date()),
			s.Confirmed[i].Value(),
			s.Suspected[i].Value(),
			s.Cured[i].Value(),
			s.Dead[i].Value(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
