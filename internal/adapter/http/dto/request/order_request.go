package request

import (
	"fmt"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase"
)

// MaxSpeakers caps speaker counts accepted over HTTP.
const MaxSpeakers = 10

func validateSpeakers(n int) error {
	if n > MaxSpeakers {
		return pricing.NewValidationError("speakers", fmt.Sprintf("must be at most %d", MaxSpeakers))
	}
	return nil
}

// PricingQuery is the query string of the public quote route.
type PricingQuery struct {
	Duration           float64 `form:"duration"`
	Speakers           int     `form:"speakers"`
	TurnaroundTime     string  `form:"turnaroundTime"`
	TimestampFrequency string  `form:"timestampFrequency"`
	IsVerbatim         bool    `form:"isVerbatim"`
}

func (q PricingQuery) Validate() error {
	return validateSpeakers(q.Speakers)
}

func (q PricingQuery) ToSpecification() pricing.Specification {
	return pricing.Specification{
		DurationMinutes:  q.Duration,
		SpeakerCount:     q.Speakers,
		Turnaround:       pricing.TurnaroundTier(q.TurnaroundTime),
		TimestampDensity: pricing.TimestampDensity(q.TimestampFrequency),
		FullVerbatim:     q.IsVerbatim,
	}
}

// StatsQuery selects the recent-revenue window of the admin overview.
type StatsQuery struct {
	Period int `form:"period"`
}

type CustomerInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateOrderRequest keeps the storefront's flat specification fields.
type CreateOrderRequest struct {
	Duration           float64             `json:"duration"`
	Speakers           int                 `json:"speakers"`
	TurnaroundTime     string              `json:"turnaroundTime"`
	TimestampFrequency string              `json:"timestampFrequency"`
	IsVerbatim         bool                `json:"isVerbatim"`
	CustomerInfo       CustomerInfoRequest `json:"customerInfo"`
	SpecialRequests    string              `json:"specialRequests"`
}

func (r CreateOrderRequest) Validate() error {
	return validateSpeakers(r.Speakers)
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		Specification: pricing.Specification{
			DurationMinutes:  r.Duration,
			SpeakerCount:     r.Speakers,
			Turnaround:       pricing.TurnaroundTier(r.TurnaroundTime),
			TimestampDensity: pricing.TimestampDensity(r.TimestampFrequency),
			FullVerbatim:     r.IsVerbatim,
		},
		Customer: entities.CustomerInfo{
			Name:  r.CustomerInfo.Name,
			Email: r.CustomerInfo.Email,
			Phone: r.CustomerInfo.Phone,
		},
		SpecialRequests: r.SpecialRequests,
	}
}

// VerifyPaymentRequest carries our payment reference and the provider's
// transaction id reported by the checkout.
type VerifyPaymentRequest struct {
	PaymentReference  string `json:"paymentReference"`
	ExternalReference string `json:"externalReference"`
}

type UpdateStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

func (r UpdateStatusRequest) PaymentStatus() entities.PaymentStatus {
	return entities.PaymentStatus(r.Status)
}
