package entries

import (
	"fmt"
	"strings"

	"bilty/internal/core"
)

// Form is the flat editable shape of a transport bill: the fields a
// user types, with dates as YYYY-MM-DD strings the way date inputs
// produce them.
type Form struct {
	Date      string
	VehicleNo string
	From      string
	To        string

	Bill          int64
	MS            string
	GSTNo         string
	SrNo          int64
	LRNo          int64
	LRDate        string
	InvoiceNo     string
	HandleCharges float64
	Detention     float64
	Freight       float64
	Total         float64
	Status        core.BillStatus

	OwnerNameAndAddress string
	ContactNo           int64
	DriverNameAndMob    string
	LorryHireAmount     float64
	BalanceAmt          float64
}

// NewForm seeds an empty form with today's defaults.
func NewForm(today core.Date) Form {
	return Form{
		Date:   today.FormString(),
		LRDate: today.FormString(),
		Status: core.StatusPending,
	}
}

// FormFrom flattens an existing bill for editing. Dates round-trip
// through FormString, so saving an untouched form reproduces the bill.
func FormFrom(b core.TransportBill) Form {
	f := Form{
		Date:      b.Date.FormString(),
		VehicleNo: b.VehicleNo,
		From:      b.From,
		To:        b.To,

		Bill:          b.TransportBillData.Bill,
		MS:            b.TransportBillData.MS,
		GSTNo:         b.TransportBillData.GSTNo,
		SrNo:          b.TransportBillData.SrNo,
		LRNo:          b.TransportBillData.LRNo,
		InvoiceNo:     b.TransportBillData.InvoiceNo,
		HandleCharges: b.TransportBillData.HandleCharges,
		Detention:     b.TransportBillData.Detention,
		Freight:       b.TransportBillData.Freight,
		Total:         b.TransportBillData.Total,
		Status:        b.TransportBillData.Status,

		OwnerNameAndAddress: b.OwnerData.OwnerNameAndAddress,
		ContactNo:           b.OwnerData.ContactNo,
		DriverNameAndMob:    b.OwnerData.DriverNameAndMob,
		LorryHireAmount:     b.OwnerData.LorryHireAmount,
		BalanceAmt:          b.OwnerData.BalanceAmt,
	}
	if !b.TransportBillData.LRDate.IsZero() {
		f.LRDate = b.TransportBillData.LRDate.FormString()
	}
	return f
}

// AsBill validates the form and builds the bill to submit. Existing
// identifiers are the caller's concern; the form never carries them.
func (f Form) AsBill() (core.TransportBill, error) {
	date, err := core.ParseFormDate(f.Date)
	if err != nil {
		return core.TransportBill{}, fmt.Errorf("parse date: %w", err)
	}
	var lrDate core.Date
	if strings.TrimSpace(f.LRDate) != "" {
		lrDate, err = core.ParseFormDate(f.LRDate)
		if err != nil {
			return core.TransportBill{}, fmt.Errorf("parse lr date: %w", err)
		}
	}

	b := core.TransportBill{
		Date:      date,
		VehicleNo: strings.TrimSpace(f.VehicleNo),
		From:      strings.TrimSpace(f.From),
		To:        strings.TrimSpace(f.To),
		TransportBillData: core.TransportBillData{
			Bill:          f.Bill,
			MS:            f.MS,
			GSTNo:         f.GSTNo,
			SrNo:          f.SrNo,
			LRNo:          f.LRNo,
			LRDate:        lrDate,
			InvoiceNo:     f.InvoiceNo,
			HandleCharges: f.HandleCharges,
			Detention:     f.Detention,
			Freight:       f.Freight,
			Total:         f.Total,
			Status:        f.Status,
		},
		OwnerData: core.OwnerData{
			OwnerNameAndAddress: f.OwnerNameAndAddress,
			ContactNo:           f.ContactNo,
			DriverNameAndMob:    f.DriverNameAndMob,
			LorryHireAmount:     f.LorryHireAmount,
			BalanceAmt:          f.BalanceAmt,
		},
	}
	if b.TransportBillData.Total == 0 {
		b.TransportBillData.Total = f.Freight + f.Detention + f.HandleCharges
	}
	if err := b.Validate(); err != nil {
		return core.TransportBill{}, err
	}
	return b, nil
}
