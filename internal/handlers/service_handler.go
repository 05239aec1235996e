// internal/handlers/service_handler.go
package handlers

import (
	"github.com/nazgool97/salon-bot-sub000/internal/pricing"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the read-only service/master catalog and the
// price-quote operation (spec.md §6: "list services", "list masters for
// services", "price quote").
type ServiceHandler struct {
	services *repository.ServiceRepository
	masters  *repository.MasterRepository
	settings *settings.Store
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(services *repository.ServiceRepository, masters *repository.MasterRepository, settingsStore *settings.Store) *ServiceHandler {
	return &ServiceHandler{services: services, masters: masters, settings: settingsStore}
}

// ListServices godoc
// @Summary List the service catalog
// @Tags services
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/v1/services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	list, err := h.services.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondInternalError(c, "list services", err)
		return
	}
	RespondSuccess(c, list)
}

// ListMastersForServices godoc
// @Summary List masters who can perform every one of the given services
// @Tags masters
// @Produce json
// @Param service_ids query string true "Comma-separated service ids"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/v1/masters [get]
func (h *ServiceHandler) ListMastersForServices(c *gin.Context) {
	serviceIDs := parseCSV(c.Query("service_ids"))
	if len(serviceIDs) == 0 {
		RespondBadRequest(c, "service_ids required", "provide at least one service id")
		return
	}

	ctx := c.Request.Context()
	sets := make([]map[int64]bool, 0, len(serviceIDs))
	masterByID := make(map[int64]interface{})
	for _, svcID := range serviceIDs {
		list, err := h.masters.ListForService(ctx, svcID)
		if err != nil {
			RespondInternalError(c, "list masters for service", err)
			return
		}
		set := make(map[int64]bool, len(list))
		for i := range list {
			set[list[i].ID] = true
			masterByID[list[i].ID] = list[i]
		}
		sets = append(sets, set)
	}

	var result []interface{}
	for id, m := range masterByID {
		inAll := true
		for _, set := range sets {
			if !set[id] {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, m)
		}
	}
	RespondSuccess(c, result)
}

// QuoteRequest bundles a price-quote request.
type QuoteRequest struct {
	ServiceIDs    []string `json:"service_ids" binding:"required,min=1"`
	PaymentMethod string   `json:"payment_method" binding:"required,payment_method"`
	MasterID      *int64   `json:"master_id,omitempty"`
}

// Quote godoc
// @Summary Price a set of services, with the online-payment discount applied if requested
// @Tags pricing
// @Accept json
// @Produce json
// @Param body body QuoteRequest true "Quote request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/quote [post]
func (h *ServiceHandler) Quote(c *gin.Context) {
	req, ok := BindJSON[QuoteRequest](c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	fallback := h.settings.GetInt(ctx, settings.KeySlotDurationMinutes, 60)

	var items []pricing.LineItem
	var masterID int64
	if req.MasterID != nil {
		masterID = *req.MasterID
	}
	for _, id := range req.ServiceIDs {
		svc, err := h.services.FindByID(ctx, id)
		if err != nil {
			RespondBadRequest(c, "unknown service", id)
			return
		}
		item := pricing.LineItem{Service: svc}
		if masterID != 0 {
			override, err := h.services.MasterOverride(ctx, masterID, id)
			if err != nil {
				RespondInternalError(c, "resolve master override", err)
				return
			}
			item.Override = override
		}
		items = append(items, item)
	}

	agg := pricing.AggregateLineItems(items, fallback)
	pct := h.settings.GetInt(ctx, settings.KeyOnlinePaymentDiscountPercent, 5)
	isOnline := req.PaymentMethod == "online"
	quote := pricing.QuoteOnline(agg.PriceCents, pct, isOnline)

	RespondSuccess(c, gin.H{
		"original_price_cents":    quote.OriginalCents,
		"final_price_cents":       quote.FinalCents,
		"discount_amount_cents":   quote.DiscountCents,
		"discount_percent_applied": boolToPercent(quote.Applied, pct),
		"duration_minutes":        agg.DurationMinutes,
	})
}

func boolToPercent(applied bool, pct int) int {
	if !applied {
		return 0
	}
	return pct
}

func parseCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
