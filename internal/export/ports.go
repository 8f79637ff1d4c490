// Package export turns a bill list into a tabular report and hands it
// to an outbound adapter: a CSV file, a Google Sheets tab or an
// in-memory sink for tests.
package export

import (
	"context"
	"strconv"

	"bilty/internal/core"
)

// ReportWriter is the outbound port. Adapters return a reference to
// where the report landed: a file path, a sheet range, a memory key.
type ReportWriter interface {
	WriteReport(ctx context.Context, r Report) (ref string, err error)
}

// Report is one exportable table: a name, a header row and data rows.
type Report struct {
	Name   string
	Header []string
	Rows   [][]string
}

var entryHeader = []string{
	"Date", "Bill No", "Vehicle No", "From", "To", "Invoice No",
	"Owner", "LR No", "Freight", "Detention", "Handle Charges",
	"Total", "Status",
}

// EntriesReport flattens bills into the export table, one row per bill
// in the given order.
func EntriesReport(name string, bills []core.TransportBill) Report {
	rows := make([][]string, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, []string{
			b.Date.FormString(),
			strconv.FormatInt(b.TransportBillData.Bill, 10),
			b.VehicleNo,
			b.From,
			b.To,
			b.TransportBillData.InvoiceNo,
			b.OwnerLabel(),
			strconv.FormatInt(b.TransportBillData.LRNo, 10),
			amount(b.TransportBillData.Freight),
			amount(b.TransportBillData.Detention),
			amount(b.TransportBillData.HandleCharges),
			amount(b.TransportBillData.Total),
			string(b.TransportBillData.Status),
		})
	}
	return Report{Name: name, Header: entryHeader, Rows: rows}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
