package handlers

import (
	"net/http"

	request "transcribe_billing/internal/adapter/http/dto/request"
	response "transcribe_billing/internal/adapter/http/dto/response"
	"transcribe_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PricingHandler serves public price quotes.
type PricingHandler struct {
	usecase usecase.IPricingUseCase
	log     *zap.Logger
}

func NewPricingHandler(uc usecase.IPricingUseCase, log *zap.Logger) *PricingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PricingHandler{usecase: uc, log: log}
}

// GetPricing quotes a specification without creating an order.
//
// @Summary      Quote price
// @Tags         orders
// @Produce      json
// @Param        duration            query  number   true   "Duration in minutes"
// @Param        speakers            query  integer  true   "Number of speakers"
// @Param        turnaroundTime      query  string   true   "3days, 1.5days or 6-12hrs"
// @Param        timestampFrequency  query  string   true   "none, speaker, 2min, 30sec or 10sec"
// @Param        isVerbatim          query  boolean  false  "Full verbatim"
// @Success      200  {object}  response.QuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /orders/pricing [get]
func (h *PricingHandler) GetPricing(c *gin.Context) {
	var q request.PricingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	if err := q.Validate(); err != nil {
		writeError(c, mapOrderError(err))
		return
	}

	spec := q.ToSpecification().Normalized()
	quote, err := h.usecase.Quote(c.Request.Context(), spec)
	if err != nil {
		h.log.Debug("[pricing][handler] quote failed", zap.Error(err))
		writeError(c, mapOrderError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(spec, quote))
}
