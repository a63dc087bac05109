package payments

import (
	"context"
	"log/slog"
)

// ApprovalState is the donor's answer to the PayPal approval flow.
type ApprovalState string

const (
	ApprovalApproved  ApprovalState = "approved"
	ApprovalCancelled ApprovalState = "cancelled"
	ApprovalFailed    ApprovalState = "failed"
)

// ApprovalResult collapses PayPal's onApprove/onCancel/onError callbacks
// into one discriminated value. ErrorName carries the PayPal error name for
// ApprovalFailed.
type ApprovalResult struct {
	State     ApprovalState
	ErrorName string
}

// ApprovalFlow walks the donor through PayPal's approval UI for an order
// created server-side, and resolves once the donor approves, cancels, or
// the flow errors.
type ApprovalFlow interface {
	Approve(ctx context.Context, orderID string) ApprovalResult
}

// PayPalAdapter runs create-order → approval → capture-order. Capture is
// keyed by the provider-issued order id from the first call, and is never
// attempted unless the donor approved. Cancellation is a distinct terminal
// outcome, not an error.
type PayPalAdapter struct {
	api      *Client
	approval ApprovalFlow
}

func (a *PayPalAdapter) Execute(ctx context.Context, data DonationData) Outcome {
	order, err := a.api.CreatePayPalOrder(ctx, CreateOrderRequest{
		Amount:    data.Amount,
		Currency:  data.Currency,
		Type:      string(data.Type),
		Category:  string(data.Category),
		DonorInfo: data.Donor,
	})
	if err != nil {
		slog.Warn("PayPal order creation failed", "error", err)
		return failure(userMessage(err))
	}

	result := a.approval.Approve(ctx, order.OrderID)
	switch result.State {
	case ApprovalCancelled:
		slog.Info("PayPal approval cancelled by donor", "order_id", order.OrderID)
		return cancelled()
	case ApprovalFailed:
		slog.Warn("PayPal approval failed", "order_id", order.OrderID, "name", result.ErrorName)
		return failure(PayPalErrorText(result.ErrorName))
	}

	capture, err := a.api.CapturePayPalOrder(ctx, CaptureOrderRequest{OrderID: order.OrderID})
	if err != nil {
		slog.Warn("PayPal capture failed", "order_id", order.OrderID, "error", err)
		return failure(userMessage(err))
	}

	return ok(capture.TransactionID, capture.ReceiptURL, order.DonationID)
}
