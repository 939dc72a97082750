package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus enumerates the workflow stages a payroll run or expense batch
// moves through. The stages gate which items are fed into the costing engine
// and whether a checkout quote is accepted as final; the engine itself is
// invoked identically at every stage.
type BatchStatus string

const (
	StatusDraft     BatchStatus = "DRAFT"
	StatusReview    BatchStatus = "REVIEW"
	StatusSummary   BatchStatus = "SUMMARY"
	StatusCheckout  BatchStatus = "CHECKOUT"
	StatusPaid      BatchStatus = "PAID"
	StatusCancelled BatchStatus = "CANCELLED"
)

// NextStatus returns the stage that follows s in the forward workflow, or
// false when s is terminal.
func (s BatchStatus) NextStatus() (BatchStatus, bool) {
	switch s {
	case StatusDraft:
		return StatusReview, true
	case StatusReview:
		return StatusSummary, true
	case StatusSummary:
		return StatusCheckout, true
	case StatusCheckout:
		return StatusPaid, true
	default:
		return "", false
	}
}

// PayrollItem is one employee's compensation entry within a run. Amount and
// currency start from the employee record and may be adjusted per run.
type PayrollItem struct {
	ItemID        string          `json:"itemID"` // Primary Key (UUID)
	PayrollRunID  string          `json:"payrollRunID"`
	EmployeeID    string          `json:"employeeID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	BeneficiaryID string          `json:"beneficiaryID"`
}

// PayrollRun is a batch of compensation items paid out together.
// TotalAmount and TotalFee are the settlement-currency totals of the last
// engine pass over the run's items.
type PayrollRun struct {
	PayrollRunID    string          `json:"payrollRunID"` // Primary Key (UUID)
	Name            string          `json:"name"`
	PayDate         time.Time       `json:"payDate"`
	Status          BatchStatus     `json:"status"`
	PaymentCurrency string          `json:"paymentCurrency"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalFee        decimal.Decimal `json:"totalFee"`
	ItemCount       int             `json:"itemCount"`
	Items           []PayrollItem   `json:"items,omitempty"`
	AuditFields
}

// LineItems projects the run's entries into engine line items.
func (r *PayrollRun) LineItems() []LineItem {
	items := make([]LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = LineItem{
			SourceID:      it.EmployeeID,
			Category:      Compensation,
			Amount:        it.Amount,
			CurrencyCode:  it.CurrencyCode,
			BeneficiaryID: it.BeneficiaryID,
		}
	}
	return items
}
