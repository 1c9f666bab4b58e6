package handlers

import (
	"io"
	"net/http"

	"mediconnect/services/payments"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// StripeWebhookHandler handles POST /api/payments/webhook. Stripe signs
// the raw body, so it is read before any JSON binding.
func StripeWebhookHandler(processor *payments.WebhookProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read webhook body", err.Error())
			return
		}
		signature := c.GetHeader("Stripe-Signature")
		if err := processor.Process(c.Request.Context(), payload, signature); err != nil {
			// A non-2xx makes Stripe retry, which is what we want for
			// transient failures.
			utils.JSONError(c, http.StatusBadRequest, "webhook processing failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
