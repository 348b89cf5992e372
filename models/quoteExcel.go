package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildQuoteWorkbook writes the quote's line-item table and totals into a
// fresh workbook for spreadsheet-side editing of a generated quote.
func BuildQuoteWorkbook(quote *QuoteData) (*excelize.File, error) {

	f := excelize.NewFile()
	_, err := f.NewSheet("Sheet1")
	if err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue("Sheet1", "A1", "품목명")
	f.SetCellValue("Sheet1", "B1", "규격")
	f.SetCellValue("Sheet1", "C1", "수량")
	f.SetCellValue("Sheet1", "D1", "단위")
	f.SetCellValue("Sheet1", "E1", "단가")
	f.SetCellValue("Sheet1", "F1", "공급가액")
	f.SetCellValue("Sheet1", "G1", "세액")
	f.SetCellValue("Sheet1", "H1", "비고")

	// Add data
	for i, item := range quote.Items {
		row := i + 2
		f.SetCellValue("Sheet1", "A"+fmt.Sprint(row), item.Name)
		f.SetCellValue("Sheet1", "B"+fmt.Sprint(row), item.Spec)
		f.SetCellValue("Sheet1", "C"+fmt.Sprint(row), item.Quantity.InexactFloat64())
		f.SetCellValue("Sheet1", "D"+fmt.Sprint(row), item.Unit)
		f.SetCellValue("Sheet1", "E"+fmt.Sprint(row), item.UnitPrice.InexactFloat64())
		f.SetCellValue("Sheet1", "F"+fmt.Sprint(row), item.SupplyPrice.InexactFloat64())
		f.SetCellValue("Sheet1", "G"+fmt.Sprint(row), item.Tax.InexactFloat64())
		f.SetCellValue("Sheet1", "H"+fmt.Sprint(row), item.Note)
	}

	totalsRow := len(quote.Items) + 2
	f.SetCellValue("Sheet1", "A"+fmt.Sprint(totalsRow), "합계")
	f.SetCellValue("Sheet1", "F"+fmt.Sprint(totalsRow), quote.TotalSupplyPrice.InexactFloat64())
	f.SetCellValue("Sheet1", "G"+fmt.Sprint(totalsRow), quote.TotalTax.InexactFloat64())
	f.SetCellValue("Sheet1", "H"+fmt.Sprint(totalsRow), quote.TotalAmount.InexactFloat64())

	return f, nil
}
