package response

import (
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase"
)

type CustomerInfoResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type StatusChangeResponse struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	ActorID   string    `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Reason    string    `json:"reason,omitempty"`
	At        time.Time `json:"at"`
}

type OrderResponse struct {
	ID                       string                 `json:"id"`
	OrderNumber              string                 `json:"orderNumber"`
	UserID                   string                 `json:"userId"`
	Specifications           SpecificationResponse  `json:"specifications"`
	CustomerInfo             CustomerInfoResponse   `json:"customerInfo"`
	SpecialRequests          string                 `json:"specialRequests,omitempty"`
	Pricing                  PricingResponse        `json:"pricing"`
	TotalAmount              string                 `json:"totalAmount"`
	AmountMinor              int64                  `json:"amountMinor"`
	Currency                 string                 `json:"currency"`
	PaymentStatus            string                 `json:"paymentStatus"`
	PaymentReference         string                 `json:"paymentReference"`
	ExternalPaymentReference string                 `json:"externalPaymentReference,omitempty"`
	PaymentMethod            string                 `json:"paymentMethod,omitempty"`
	PaidAt                   *time.Time             `json:"paidAt,omitempty"`
	FailureReason            string                 `json:"failureReason,omitempty"`
	AdminNotes               string                 `json:"adminNotes,omitempty"`
	StatusHistory            []StatusChangeResponse `json:"statusHistory"`
	CreatedAt                time.Time              `json:"createdAt"`
	UpdatedAt                time.Time              `json:"updatedAt"`
}

type CreateOrderResponse struct {
	Message          string          `json:"message"`
	Order            OrderResponse   `json:"order"`
	Pricing          PricingResponse `json:"pricing"`
	PaymentReference string          `json:"paymentReference"`
}

type OrderEnvelopeResponse struct {
	Message string        `json:"message,omitempty"`
	Order   OrderResponse `json:"order"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type PricingAuditResponse struct {
	OrderID        string           `json:"orderId"`
	Version        string           `json:"version"`
	StoredTotal    string           `json:"storedTotal"`
	Stored         PricingResponse  `json:"stored"`
	Recomputed     *PricingResponse `json:"recomputed,omitempty"`
	RecomputeError string           `json:"recomputeError,omitempty"`
	Matches        bool             `json:"matches"`
}

type OrderStatsResponse struct {
	TotalOrders        int64     `json:"totalOrders"`
	PaidOrders         int64     `json:"paidOrders"`
	PendingOrders      int64     `json:"pendingOrders"`
	FailedOrders       int64     `json:"failedOrders"`
	RefundedOrders     int64     `json:"refundedOrders"`
	CancelledOrders    int64     `json:"cancelledOrders"`
	TotalRevenue       string    `json:"totalRevenue"`
	RecentRevenue      string    `json:"recentRevenue"`
	TotalRevenueMinor  int64     `json:"totalRevenueMinor"`
	RecentRevenueMinor int64     `json:"recentRevenueMinor"`
	Currency           string    `json:"currency"`
	PeriodDays         int       `json:"periodDays"`
	Since              time.Time `json:"since"`
}

type OrderStatsEnvelopeResponse struct {
	Stats OrderStatsResponse `json:"stats"`
}

func FromOrderStats(s entities.OrderStats) OrderStatsEnvelopeResponse {
	return OrderStatsEnvelopeResponse{Stats: OrderStatsResponse{
		TotalOrders:        s.TotalOrders,
		PaidOrders:         s.Count(entities.PaymentStatusPaid),
		PendingOrders:      s.Count(entities.PaymentStatusPending),
		FailedOrders:       s.Count(entities.PaymentStatusFailed),
		RefundedOrders:     s.Count(entities.PaymentStatusRefunded),
		CancelledOrders:    s.Count(entities.PaymentStatusCancelled),
		TotalRevenue:       pricing.FormatMinor(s.TotalRevenueMinor),
		RecentRevenue:      pricing.FormatMinor(s.RecentRevenueMinor),
		TotalRevenueMinor:  s.TotalRevenueMinor,
		RecentRevenueMinor: s.RecentRevenueMinor,
		Currency:           s.Currency,
		PeriodDays:         s.PeriodDays,
		Since:              s.Since,
	}}
}

func FromOrder(o entities.Order) OrderResponse {
	history := make([]StatusChangeResponse, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, StatusChangeResponse{
			From:      string(h.From),
			To:        string(h.To),
			ActorID:   h.ActorID,
			ActorRole: string(h.ActorRole),
			Reason:    h.Reason,
			At:        h.At,
		})
	}
	return OrderResponse{
		ID:                       o.ID,
		OrderNumber:              o.OrderNumber,
		UserID:                   o.UserID,
		Specifications:           FromSpecification(o.Specification),
		CustomerInfo:             CustomerInfoResponse{Name: o.Customer.Name, Email: o.Customer.Email, Phone: o.Customer.Phone},
		SpecialRequests:          o.SpecialRequests,
		Pricing:                  FromPricingResult(o.Pricing),
		TotalAmount:              pricing.FormatMinor(o.AmountMinor),
		AmountMinor:              o.AmountMinor,
		Currency:                 o.Currency,
		PaymentStatus:            string(o.PaymentStatus),
		PaymentReference:         o.PaymentReference,
		ExternalPaymentReference: o.ExternalPaymentReference,
		PaymentMethod:            o.PaymentMethod,
		PaidAt:                   o.PaidAt,
		FailureReason:            o.FailureReason,
		AdminNotes:               o.AdminNotes,
		StatusHistory:            history,
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
	}
}

func FromCreatedOrder(o entities.Order) CreateOrderResponse {
	return CreateOrderResponse{
		Message:          "Order created successfully",
		Order:            FromOrder(o),
		Pricing:          FromPricingResult(o.Pricing),
		PaymentReference: o.PaymentReference,
	}
}

func FromOrders(orders []entities.Order) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return OrderListResponse{Orders: out, Total: len(out)}
}

func FromPricingAudit(a usecase.PricingAudit) PricingAuditResponse {
	res := PricingAuditResponse{
		OrderID:        a.OrderID,
		Version:        string(a.Version),
		StoredTotal:    pricing.FormatMinor(a.StoredMinor),
		Stored:         FromPricingResult(a.Stored),
		RecomputeError: a.RecomputeError,
		Matches:        a.Matches,
	}
	if a.Recomputed != nil {
		p := FromPricingResult(*a.Recomputed)
		res.Recomputed = &p
	}
	return res
}
