package interfaces

import "context"

// CaptureRequest is the processor-facing shape of a money movement. Amounts
// are integer minor currency units (cents); Currency is the deployment's
// fixed ISO code.
type CaptureRequest struct {
	AmountCents        int64
	Currency           string
	DestinationAccount string
	ApplicationFee     int64
	Description        string
	ExternalReference  string
	Metadata           map[string]interface{}
}

// CaptureResult carries the processor-assigned identifier and the
// client-facing confirmation handle returned by a successful capture.
type CaptureResult struct {
	ProviderPaymentID  string
	ProviderStatus     string
	ConfirmationHandle string
}

// IPaymentGateway abstracts the external payment processor (Mercado Pago).
//
// Calls are at-most-once from this service's perspective: on error the
// caller must not record a Payment row; the processor's own idempotency on
// ExternalReference makes a whole-capture retry safe.
type IPaymentGateway interface {
	CreateCustomerAccount(ctx context.Context, email, name string) (accountID string, err error)
	Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error)
}
