package core

import (
	"errors"
	"strings"
)

const (
	StatusPending    BillStatus = "PENDING"
	StatusInProgress BillStatus = "IN_PROGRESS"
	StatusCompleted  BillStatus = "COMPLETED"
	StatusCancelled  BillStatus = "CANCELLED"
)

type (
	// BillStatus is the lifecycle state of a transport bill as carried on
	// the wire.
	BillStatus string

	// TransportBillData holds the billing side of an entry: bill/invoice
	// identifiers, charges and the computed total.
	TransportBillData struct {
		Bill               int64      `json:"bill"`
		MS                 string     `json:"ms"`
		GSTNo              string     `json:"gstno"`
		OtherDetail        string     `json:"otherDetail"`
		SrNo               int64      `json:"srno"`
		LRNo               int64      `json:"lrno"`
		LRDate             Date       `json:"lrDate"`
		InvoiceNo          string     `json:"invoiceNo"`
		ConsignorConsignee string     `json:"consignorConsignee"`
		HandleCharges      float64    `json:"handleCharges"`
		Detention          float64    `json:"detention"`
		Freight            float64    `json:"freight"`
		Total              float64    `json:"total"`
		Status             BillStatus `json:"status"`
	}

	// OwnerData holds the vehicle-owner side of an entry: driver, vehicle
	// and insurance identifiers, shipment description and the three
	// advance payment tranches.
	OwnerData struct {
		ContactNo           int64   `json:"contactNo"`
		OwnerNameAndAddress string  `json:"ownerNameAndAddress"`
		PANNo               string  `json:"panNo"`
		DriverNameAndMob    string  `json:"driverNameAndMob"`
		LicenceNo           string  `json:"licenceNo"`
		ChasisNo            string  `json:"chasisNo"`
		EngineNo            string  `json:"engineNo"`
		InsuranceCo         string  `json:"insuranceCo"`
		PolicyNo            string  `json:"policyNo"`
		PolicyDate          Date    `json:"policyDate"`
		SrNo                int64   `json:"srno"`
		LRNo                int64   `json:"lrno"`
		Packages            int64   `json:"packages"`
		Description         string  `json:"description"`
		WtKgs               float64 `json:"wtKgs"`
		Remarks             string  `json:"remarks"`
		BrokerName          string  `json:"brokerName"`
		BrokerPANNo         string  `json:"brokerPanNo"`
		LorryHireAmount     float64 `json:"lorryHireAmount"`
		AccNo               int64   `json:"accNo"`
		OtherCharges        float64 `json:"otherChargesHamliDetentionHeight"`
		TotalLorryHire      float64 `json:"totalLorryHireRs"`
		AdvAmt1             float64 `json:"advAmt1"`
		AdvDate1            Date    `json:"advDate1"`
		NEFTIMPSIDNo1       string  `json:"neftImpsIdno1"`
		AdvAmt2             float64 `json:"advAmt2"`
		AdvDate2            Date    `json:"advDate2"`
		NEFTIMPSIDNo2       string  `json:"neftImpsIdno2"`
		AdvAmt3             float64 `json:"advAmt3"`
		AdvDate3            Date    `json:"advDate3"`
		NEFTIMPSIDNo3       string  `json:"neftImpsIdno3"`
		BalanceAmt          float64 `json:"balanceAmt"`
		OtherChargesNote    string  `json:"otherChargesHamaliDetentionHeight"`
		DeductionInClaim    string  `json:"deductionInClaimPenalty"`
		FinalNEFTIMPSIDNo   string  `json:"finalNeftImpsIdno"`
		FinalDate           Date    `json:"finalDate"`
		DeliveryDate        Date    `json:"deliveryDate"`
	}

	// TransportBill is one billing record. ID is the human-readable
	// sequential identifier (e.g. "TE-20250730-0001"); StorageID is the
	// backend storage identifier.
	TransportBill struct {
		ID                string            `json:"id,omitempty"`
		StorageID         string            `json:"_id,omitempty"`
		Date              Date              `json:"date"`
		VehicleNo         string            `json:"vehicleNo"`
		From              string            `json:"from"`
		To                string            `json:"to"`
		TransportBillData TransportBillData `json:"transportBillData"`
		OwnerData         OwnerData         `json:"ownerData"`
		CreatedAt         Date              `json:"createdAt,omitempty"`
		UpdatedAt         Date              `json:"updatedAt,omitempty"`
	}
)

var (
	ErrInvalidStatus  = errors.New("invalid bill status")
	ErrEmptyVehicleNo = errors.New("empty vehicle number")
	ErrEmptyRoute     = errors.New("empty route endpoint")
)

// Valid reports whether s is one of the four known statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AllStatuses lists the statuses in display order.
func AllStatuses() []BillStatus {
	return []BillStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

func (b TransportBill) Validate() error {
	if err := b.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(b.VehicleNo) == "" {
		return ErrEmptyVehicleNo
	}
	if strings.TrimSpace(b.From) == "" || strings.TrimSpace(b.To) == "" {
		return ErrEmptyRoute
	}
	if !b.TransportBillData.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Ref returns the identifier to address the bill by: the human-readable
// ID when present, the storage ID otherwise.
func (b TransportBill) Ref() string {
	if b.ID != "" {
		return b.ID
	}
	return b.StorageID
}

// Route returns the display label used to group bills by route.
func (b TransportBill) Route() string {
	return b.From + " → " + b.To
}

// OwnerLabel returns the first line of the free-text owner name and
// address field, or "Unknown" when it is empty.
func (b TransportBill) OwnerLabel() string {
	line, _, _ := strings.Cut(b.OwnerData.OwnerNameAndAddress, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "Unknown"
	}
	return line
}
