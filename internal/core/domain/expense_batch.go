package domain

import "github.com/shopspring/decimal"

// ExpenseItem is one receipt within a reimbursement batch.
type ExpenseItem struct {
	ItemID         string          `json:"itemID"` // Primary Key (UUID)
	ExpenseBatchID string          `json:"expenseBatchID"`
	EmployeeID     string          `json:"employeeID"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
}

// ExpenseBatch is a batch of expense receipts reimbursed together. It shares
// the payroll run's workflow stages and settlement-currency totals.
type ExpenseBatch struct {
	ExpenseBatchID  string          `json:"expenseBatchID"` // Primary Key (UUID)
	Name            string          `json:"name"`
	Status          BatchStatus     `json:"status"`
	PaymentCurrency string          `json:"paymentCurrency"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalFee        decimal.Decimal `json:"totalFee"`
	ItemCount       int             `json:"itemCount"`
	Items           []ExpenseItem   `json:"items,omitempty"`
	AuditFields
}

// LineItems projects the batch's receipts into engine line items.
func (b *ExpenseBatch) LineItems() []LineItem {
	items := make([]LineItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = LineItem{
			SourceID:     it.ItemID,
			Category:     Expense,
			Amount:       it.Amount,
			CurrencyCode: it.CurrencyCode,
		}
	}
	return items
}
