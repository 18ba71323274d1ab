package handlers

import (
	"net/http"

	request "transcribe_billing/internal/adapter/http/dto/request"
	response "transcribe_billing/internal/adapter/http/dto/response"
	"transcribe_billing/internal/adapter/http/middleware"
	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for transcription orders.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
	log     *zap.Logger
}

func NewOrderHandler(uc usecase.IOrderUseCase, log *zap.Logger) *OrderHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderHandler{usecase: uc, log: log}
}

// CreateOrder prices the specification and opens a pending order.
//
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header  string                      true  "Caller id"
// @Param        request    body    request.CreateOrderRequest  true  "Order"
// @Success      201  {object}  response.CreateOrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		h.log.Info("[order][handler] create failed", zap.String("user_id", actor.UserID), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromCreatedOrder(order))
}

// VerifyPayment confirms a payment reported by the checkout.
//
// @Summary      Verify payment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header  string                        true  "Caller id"
// @Param        request    body    request.VerifyPaymentRequest  true  "References"
// @Success      200  {object}  response.OrderEnvelopeResponse
// @Failure      402  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /orders/verify-payment [post]
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var payload request.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.ConfirmPayment(c.Request.Context(), actor, payload.PaymentReference, payload.ExternalReference)
	if err != nil {
		h.log.Info("[order][handler] verify failed",
			zap.String("payment_reference", payload.PaymentReference), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelopeResponse{Message: "Payment verified successfully", Order: response.FromOrder(order)})
}

// ListMyOrders returns the caller's orders, newest first.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Param        X-User-Id  header  string  true   "Caller id"
// @Param        status     query   string  false  "Payment status filter"
// @Success      200  {object}  response.OrderListResponse
// @Router       /orders/my-orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	orders, err := h.usecase.ListMine(c.Request.Context(), actor, entities.PaymentStatus(c.Query("status")))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// GetOrder returns one order to its owner or an admin.
//
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        X-User-Id  header  string  true  "Caller id"
// @Param        id         path    string  true  "Order id"
// @Success      200  {object}  response.OrderEnvelopeResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	order, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelopeResponse{Order: response.FromOrder(order)})
}

// UpdateOrderStatus is the admin status override.
//
// @Summary      Update order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-User-Id    header  string                       true  "Caller id"
// @Param        X-User-Role  header  string                       true  "admin"
// @Param        id           path    string                       true  "Order id"
// @Param        request      body    request.UpdateStatusRequest  true  "New status"
// @Success      200  {object}  response.OrderEnvelopeResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	orderID := c.Param("id")

	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	order, err := h.usecase.UpdateStatus(c.Request.Context(), actor, orderID, payload.PaymentStatus(), payload.AdminNotes)
	if err != nil {
		h.log.Info("[order][handler] status update failed",
			zap.String("order_id", orderID), zap.String("admin_id", actor.UserID), zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelopeResponse{Message: "Order status updated successfully", Order: response.FromOrder(order)})
}

// GetPricingAudit recomputes an order's price under its stored rate table version.
//
// @Summary      Audit order pricing
// @Tags         admin
// @Produce      json
// @Param        X-User-Id    header  string  true  "Caller id"
// @Param        X-User-Role  header  string  true  "admin"
// @Param        id           path    string  true  "Order id"
// @Success      200  {object}  response.PricingAuditResponse
// @Router       /orders/{id}/pricing-audit [get]
func (h *OrderHandler) GetPricingAudit(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	audit, err := h.usecase.AuditPricing(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromPricingAudit(audit))
}

// GetOrderStats returns order counts by status and paid revenue.
//
// @Summary      Order statistics
// @Tags         admin
// @Produce      json
// @Param        X-User-Id    header  string  true   "Caller id"
// @Param        X-User-Role  header  string  true   "admin"
// @Param        period       query   int     false  "Recent revenue window in days (default 30)"
// @Success      200  {object}  response.OrderStatsEnvelopeResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      403  {object}  pkg.HTTPError
// @Router       /orders/stats [get]
func (h *OrderHandler) GetOrderStats(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	var query request.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	stats, err := h.usecase.Stats(c.Request.Context(), actor, query.Period)
	if err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromOrderStats(stats))
}
