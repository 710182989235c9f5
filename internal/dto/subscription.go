package dto

import (
	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest defines the data needed to create a subscription.
type CreateSubscriptionRequest struct {
	SubscriptionDate string               `json:"subscriptionDate" binding:"required,datetime=2006-01-02"`
	BillingType      domain.BillingType   `json:"billingType" binding:"required,billing"`
	PaymentMethod    domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CARD PAYPAL BANK_TRANSFER"`
}

// RecordPaymentRequest records a payment attempt. Without a status the payment stays PENDING.
type RecordPaymentRequest struct {
	Amount       decimal.Decimal      `json:"amount"`
	CurrencyCode string               `json:"currencyCode" binding:"omitempty,len=3,alpha"`
	PaymentDate  string               `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Status       domain.PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING SUCCEEDED FAILED"`
}

// ChangeSubscriptionTypeRequest switches the billing cycle.
type ChangeSubscriptionTypeRequest struct {
	BillingType domain.BillingType `json:"billingType" binding:"required,billing"`
}

// ChangePaymentMethodRequest sets the payment method. An empty value clears it.
type ChangePaymentMethodRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CARD PAYPAL BANK_TRANSFER"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID    int64                `json:"paymentID"`
	PaymentDate  string               `json:"paymentDate"`
	Amount       decimal.Decimal      `json:"amount"`
	CurrencyCode string               `json:"currencyCode"`
	Status       domain.PaymentStatus `json:"status"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID   int64                `json:"subscriptionID"`
	SubscriptionDate string               `json:"subscriptionDate"`
	BillingType      domain.BillingType   `json:"billingType"`
	PaymentMethod    domain.PaymentMethod `json:"paymentMethod,omitempty"`
	IsActive         bool                 `json:"isActive"`
	Payments         []PaymentResponse    `json:"payments"`
}

// SubscriptionSummaryResponse reports derived subscription figures.
type SubscriptionSummaryResponse struct {
	SubscriptionID     int64           `json:"subscriptionID"`
	IsActive           bool            `json:"isActive"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	CurrencyCode       string          `json:"currencyCode"`
	NextPaymentDate    string          `json:"nextPaymentDate"`
	IsExpired          bool            `json:"isExpired"`
	HasPendingPayments bool            `json:"hasPendingPayments"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    int64(p.ID()),
		PaymentDate:  formatDate(p.Date()),
		Amount:       p.Amount().Amount(),
		CurrencyCode: p.Amount().Currency(),
		Status:       p.Status(),
	}
}

// ToSubscriptionResponse converts a domain.Subscription with its payments.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	payments := s.Payments()
	res := SubscriptionResponse{
		SubscriptionID:   int64(s.ID()),
		SubscriptionDate: formatDate(s.SubscriptionDate()),
		BillingType:      s.BillingType(),
		PaymentMethod:    s.PaymentMethod(),
		IsActive:         s.IsActive(),
		Payments:         make([]PaymentResponse, len(payments)),
	}
	for i, p := range payments {
		res.Payments[i] = ToPaymentResponse(p)
	}
	return res
}

// ToSubscriptionResponses converts a slice of domain subscriptions.
func ToSubscriptionResponses(subs []*domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		res[i] = ToSubscriptionResponse(s)
	}
	return res
}
