// Package report renders aggregate reports into downloadable formats.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

const codSheetName = "COD Report"

// codHeaders is the column layout of the COD export, in order.
var codHeaders = []string{"Name", "Packages", "Delivered", "Total COD", "Total Fees"}

// WriteCODExcel renders a COD report as an XLSX workbook onto w. The
// grouping column header follows the report's group-by dimension.
func WriteCODExcel(w io.Writer, rpt *service.CODReport) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(codSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := append([]string(nil), codHeaders...)
	if rpt.GroupBy == store.CODGroupByMerchant {
		headers[0] = "Merchant"
	} else {
		headers[0] = "Driver"
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(codSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(codSheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, row := range rpt.Rows {
		values := []interface{}{row.GroupName, row.PackageCount, row.DeliveredCount, row.TotalCOD, row.TotalFees}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(codSheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(codSheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
