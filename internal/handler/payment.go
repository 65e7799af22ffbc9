package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/payment"
	"github.com/omarKhan56/MuseBot/internal/repository"
	"github.com/omarKhan56/MuseBot/internal/service"
)

// PaymentHandler fronts the gateway order and verification endpoints.
type PaymentHandler struct {
	Payments *service.PaymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	if payments == nil {
		panic("nil service passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments}
}

// CreateOrder handles POST /v1/payments/orders.  It creates a gateway
// order for the given amount and booking and returns the gateway's order
// untouched, so the frontend can open the checkout with it.  Gateway
// failures surface as 502 because the fault is upstream, not here.
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var body struct {
		Amount    int64  `json:"amount"` // rupees
		BookingID string `json:"booking_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if body.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "amount must be positive"})
	}
	if body.BookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "booking_id is required"})
	}

	order, err := h.Payments.CreateOrder(c.Request().Context(), body.Amount, body.BookingID)
	if err != nil {
		var gerr *payment.GatewayError
		if errors.As(err, &gerr) {
			return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": "payment gateway error"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to create order"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   order,
	})
}

// Verify handles POST /v1/payments/verify, the gateway callback.  A
// signature mismatch is a client-visible 400 and leaves the booking
// untouched; a valid signature promotes the booking to completed.
func (h *PaymentHandler) Verify(c echo.Context) error {
	var body struct {
		BookingID string `json:"booking_id"`
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if body.BookingID == "" || body.OrderID == "" || body.PaymentID == "" || body.Signature == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "booking_id, razorpay_order_id, razorpay_payment_id and razorpay_signature are required"})
	}

	err := h.Payments.Verify(c.Request().Context(), body.BookingID, body.OrderID, body.PaymentID, body.Signature)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "payment verified"})
	case errors.Is(err, payment.ErrInvalidSignature):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid payment signature"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "booking not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to verify payment"})
	}
}
