package model

// PaymentStatus tracks whether a tenant has paid for the service
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// PaymentStatuses lists every accepted status, in display order
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid}

func (p PaymentStatus) Valid() bool {
	for _, s := range PaymentStatuses {
		if s == p {
			return true
		}
	}
	return false
}
