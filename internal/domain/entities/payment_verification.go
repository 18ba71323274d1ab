package entities

// PaymentVerification is the provider's answer about one transaction.
//
// Exactly one of Success or Pending may be true; both false means declined.
type PaymentVerification struct {
	Success           bool   `json:"success"`
	Pending           bool   `json:"pending"`
	PaidAmountMinor   int64  `json:"paid_amount_minor"`
	Currency          string `json:"currency"`
	Channel           string `json:"channel"`
	ExternalReference string `json:"external_reference"`
	ProviderStatus    string `json:"provider_status"`
}

func (v PaymentVerification) Declined() bool {
	return !v.Success && !v.Pending
}
