package backend

import (
	"context"
	"errors"

	"busfront/internal/domain"
)

// PaymentRequest is constructed once per payment attempt and discarded after
// the response is handled. Only the fields of the chosen method are set; the
// others stay absent from the wire body.
type PaymentRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	BookingIDs    []int64 `json:"bookingIds"`
	UserID        int64   `json:"userId"`

	UPIID string `json:"upiId,omitempty"`

	CardNumber string `json:"cardNumber,omitempty"`
	CardExpiry string `json:"cardExpiry,omitempty"`
	CardCvv    string `json:"cardCvv,omitempty"`

	AccountNumber     string `json:"accountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
}

type PaymentResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
}

// ProcessPayment submits the aggregated amount in one request. A declined
// payment comes back as a non-2xx with {success:false,message}; that is a
// result, not a transport failure, so it is returned without error and the
// form stays re-enterable.
func (c *Client) ProcessPayment(ctx context.Context, token string, req PaymentRequest) (PaymentResult, error) {
	var out PaymentResult
	err := c.post(ctx, "/api/payment/process", token, req, &out)
	if err == nil {
		return out, nil
	}

	var upstream domain.UpstreamError
	if errors.As(err, &upstream) && upstream.Status != 0 {
		out.Success = false
		if out.Message == "" {
			out.Message = upstream.Msg
		}
		if out.Message == "" {
			out.Message = "Payment failed. Please try again."
		}
		return out, nil
	}
	return out, err
}
