package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/juud-8/buildledger02/models"
)

// Policy configures the payment-application behaviors the business rules
// leave open.
type Policy struct {
	// AllowOverpayment permits recorded payments to sum past the invoice
	// total (credit balances). On by default, matching prior behavior.
	AllowOverpayment bool

	// AutoMarkPaid transitions the invoice to paid once the recorded
	// payments cover the total. Off by default; marking paid stays a
	// separately triggered action unless opted in.
	AutoMarkPaid bool
}

// DefaultPolicy is the permissive source-compatible configuration.
func DefaultPolicy() Policy {
	return Policy{AllowOverpayment: true}
}

// RecordPayment validates and appends pay to the invoice's payment history
// and rewrites the denormalized AmountPaid/BalanceDue from a full recompute.
// It returns the new history; persistence is the caller's job.
func RecordPayment(inv *models.Invoice, payments []models.Payment, pay models.Payment, pol Policy) ([]models.Payment, error) {
	if !pay.Amount.IsPositive() {
		return payments, fmt.Errorf("%w: payment amount must be positive, got %s", ErrValidation, pay.Amount)
	}
	if !pol.AllowOverpayment {
		paid := ComputeAmountPaid(payments).Add(pay.Amount)
		if paid.GreaterThan(inv.TotalAmount) {
			return payments, fmt.Errorf("%w: %s paid against total %s", ErrOverpayment, paid, inv.TotalAmount)
		}
	}

	updated := append(append([]models.Payment(nil), payments...), pay)
	applyPaid(inv, updated)

	if pol.AutoMarkPaid && inv.Status != models.InvoicePaid && inv.Status != models.InvoiceCancelled &&
		inv.AmountPaid.GreaterThanOrEqual(inv.TotalAmount) {
		inv.Status = models.InvoicePaid
	}
	return updated, nil
}

// DeletePayment removes the payment with the given id and rewrites the
// denormalized fields from the remaining history.
func DeletePayment(inv *models.Invoice, payments []models.Payment, paymentID uuid.UUID) ([]models.Payment, error) {
	idx := -1
	for i, p := range payments {
		if p.ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return payments, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}

	updated := append(append([]models.Payment(nil), payments[:idx]...), payments[idx+1:]...)
	applyPaid(inv, updated)
	return updated, nil
}

func applyPaid(inv *models.Invoice, payments []models.Payment) {
	inv.AmountPaid = ComputeAmountPaid(payments)
	inv.BalanceDue = ComputeBalanceDue(inv.TotalAmount, inv.AmountPaid)
}
