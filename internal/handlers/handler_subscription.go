package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
	"github.com/SscSPs/finance_tracker_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// subscriptionHandler handles subscriptions and their payments.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subscriptionService)

	subs := rg.Group("/subscriptions")
	{
		subs.POST("", h.createSubscription)
		subs.GET("", h.listSubscriptions)
		subs.GET("/:subscriptionID", h.getSubscription)
		subs.GET("/:subscriptionID/summary", h.getSummary)
		subs.PATCH("/:subscriptionID/type", h.changeType)
		subs.PATCH("/:subscriptionID/payment-method", h.changePaymentMethod)
		subs.POST("/:subscriptionID/activate", h.activate)
		subs.POST("/:subscriptionID/deactivate", h.deactivate)
		subs.POST("/:subscriptionID/payments", h.recordPayment)
		subs.POST("/:subscriptionID/payments/:paymentID/succeed", h.resolvePayment(true))
		subs.POST("/:subscriptionID/payments/:paymentID/fail", h.resolvePayment(false))
	}
}

// createSubscription godoc
// @Summary Create a subscription
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "create subscription")
		return
	}

	logger.Info("Subscription created successfully", slog.Int64("subscription_id", int64(sub.ID())))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// listSubscriptions godoc
// @Summary List subscriptions with their payments
// @Tags subscriptions
// @Produce  json
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	subs, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponses(subs))
}

// getSubscription godoc
// @Summary Get a subscription by ID
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	h.withSubscription(c, "retrieve subscription", func(userID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
		return h.subscriptionService.GetSubscriptionByID(c.Request.Context(), userID, id)
	})
}

// getSummary godoc
// @Summary Summarize a subscription
// @Description Total paid, next payment date, expiry and pending state.
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Success 200 {object} dto.SubscriptionSummaryResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/summary [get]
func (h *subscriptionHandler) getSummary(c *gin.Context) {
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	summary, err := h.subscriptionService.GetSubscriptionSummary(c.Request.Context(), userID, domain.SubscriptionID(id))
	if err != nil {
		respondWithError(c, err, "summarize subscription")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// changeType godoc
// @Summary Change the billing cycle
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Param   type body dto.ChangeSubscriptionTypeRequest true "New billing type"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} map[string]string "Annual subscription already has payments"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/type [patch]
func (h *subscriptionHandler) changeType(c *gin.Context) {
	var req dto.ChangeSubscriptionTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	h.withSubscription(c, "change billing type", func(userID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
		return h.subscriptionService.ChangeSubscriptionType(c.Request.Context(), userID, id, req)
	})
}

// changePaymentMethod godoc
// @Summary Set or clear the payment method
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Param   method body dto.ChangePaymentMethodRequest true "New payment method, empty to clear"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Unknown payment method"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/payment-method [patch]
func (h *subscriptionHandler) changePaymentMethod(c *gin.Context) {
	var req dto.ChangePaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	h.withSubscription(c, "change payment method", func(userID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
		return h.subscriptionService.ChangePaymentMethod(c.Request.Context(), userID, id, req)
	})
}

// activate godoc
// @Summary Activate a subscription
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} map[string]string "Subscription has pending payments"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/activate [post]
func (h *subscriptionHandler) activate(c *gin.Context) {
	h.withSubscription(c, "activate subscription", func(userID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
		return h.subscriptionService.ActivateSubscription(c.Request.Context(), userID, id)
	})
}

// deactivate godoc
// @Summary Deactivate a subscription
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} map[string]string "Subscription has pending payments"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/deactivate [post]
func (h *subscriptionHandler) deactivate(c *gin.Context) {
	h.withSubscription(c, "deactivate subscription", func(userID domain.UserID, id domain.SubscriptionID) (*domain.Subscription, error) {
		return h.subscriptionService.DeactivateSubscription(c.Request.Context(), userID, id)
	})
}

func (h *subscriptionHandler) withSubscription(c *gin.Context, action string, call func(domain.UserID, domain.SubscriptionID) (*domain.Subscription, error)) {
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	sub, err := call(userID, domain.SubscriptionID(id))
	if err != nil {
		respondWithError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// recordPayment godoc
// @Summary Record a payment attempt
// @Description Without a status (or with PENDING) the payment awaits an outcome. SUCCEEDED activates the subscription; a second success for the same amount and date is ignored.
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/payments [post]
func (h *subscriptionHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := pathID(c, "subscriptionID")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var (
		payment *domain.Payment
		err     error
	)
	if req.Status == "" || req.Status == domain.PaymentPending {
		payment, err = h.subscriptionService.AddPendingPayment(c.Request.Context(), userID, domain.SubscriptionID(id), req)
	} else {
		payment, err = h.subscriptionService.RegisterPayment(c.Request.Context(), userID, domain.SubscriptionID(id), req)
	}
	if err != nil {
		respondWithError(c, err, "record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.Int64("subscription_id", id),
		slog.Int64("payment_id", int64(payment.ID())),
		slog.String("status", string(payment.Status())))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// resolvePayment godoc
// @Summary Settle a pending payment
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path int true "Subscription ID"
// @Param   paymentID path int true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment already settled the other way"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/payments/{paymentID}/succeed [post]
// @Router /subscriptions/{subscriptionID}/payments/{paymentID}/fail [post]
func (h *subscriptionHandler) resolvePayment(succeeded bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "subscriptionID")
		if !ok {
			return
		}
		paymentID, ok := pathID(c, "paymentID")
		if !ok {
			return
		}
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		payment, err := h.subscriptionService.ResolvePayment(c.Request.Context(), userID, domain.SubscriptionID(id), domain.PaymentID(paymentID), succeeded)
		if err != nil {
			respondWithError(c, err, "resolve payment")
			return
		}
		c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
	}
}
