package services

import (
	"context"
	"fmt"
	"strings"

	"busfront/internal/backend"
	"busfront/internal/domain"
	"busfront/internal/session"
	"busfront/internal/utils"
)

// redirectAfterMs is the fixed delay the confirmation screen shows before
// moving on to the booking list.
const redirectAfterMs = 3000

const bookingsPath = "/my-bookings"

type PaymentService struct {
	Backend   *backend.Client
	Sessions  *session.Store
	RequestID string
}

// PaymentInput carries the chosen method tag and its fields. Exactly the
// set belonging to the tag is required; there is no format validation
// beyond "required".
type PaymentInput struct {
	Method string `json:"paymentMethod"`

	UPIID string `json:"upiId"`

	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCvv    string `json:"cardCvv"`

	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
}

type PaymentOutcome struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TransactionID   string `json:"transactionId,omitempty"`
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMs int    `json:"redirectAfterMs,omitempty"`
}

// BuildRequest assembles the wire request for the pending checkout. Only the
// fields of the selected method are carried.
func BuildRequest(profile domain.Profile, checkout domain.Checkout, in PaymentInput) (backend.PaymentRequest, error) {
	req := backend.PaymentRequest{
		Amount:        checkout.TotalAmount,
		PaymentMethod: strings.ToLower(strings.TrimSpace(in.Method)),
		BookingIDs:    checkout.BookingIDs(),
		UserID:        profile.ID,
	}

	switch req.PaymentMethod {
	case "upi":
		if strings.TrimSpace(in.UPIID) == "" {
			return req, domain.ValidationError{Field: "upiId", Msg: "required"}
		}
		req.UPIID = strings.TrimSpace(in.UPIID)
	case "card":
		if strings.TrimSpace(in.CardNumber) == "" {
			return req, domain.ValidationError{Field: "cardNumber", Msg: "required"}
		}
		if strings.TrimSpace(in.CardExpiry) == "" {
			return req, domain.ValidationError{Field: "cardExpiry", Msg: "required"}
		}
		if strings.TrimSpace(in.CardCvv) == "" {
			return req, domain.ValidationError{Field: "cardCvv", Msg: "required"}
		}
		req.CardNumber = strings.TrimSpace(in.CardNumber)
		req.CardExpiry = strings.TrimSpace(in.CardExpiry)
		req.CardCvv = strings.TrimSpace(in.CardCvv)
	case "netbanking":
		if strings.TrimSpace(in.AccountNumber) == "" {
			return req, domain.ValidationError{Field: "accountNumber", Msg: "required"}
		}
		if strings.TrimSpace(in.IFSCCode) == "" {
			return req, domain.ValidationError{Field: "ifscCode", Msg: "required"}
		}
		if strings.TrimSpace(in.AccountHolderName) == "" {
			return req, domain.ValidationError{Field: "accountHolderName", Msg: "required"}
		}
		req.AccountNumber = strings.TrimSpace(in.AccountNumber)
		req.IFSCCode = strings.TrimSpace(in.IFSCCode)
		req.AccountHolderName = strings.TrimSpace(in.AccountHolderName)
	default:
		return req, domain.ValidationError{Field: "paymentMethod", Msg: "must be upi, card or netbanking"}
	}

	return req, nil
}

// Process submits one payment for the whole pending checkout. All-or-nothing
// against the aggregated amount, no retry. Success clears the checkout and
// tells the caller where to navigate; failure keeps the checkout so the form
// is re-enterable.
func (s PaymentService) Process(ctx context.Context, sess session.Session, in PaymentInput) (PaymentOutcome, error) {
	var out PaymentOutcome

	if sess.Checkout == nil {
		return out, domain.ValidationError{Field: "checkout", Msg: "no pending checkout, book seats first"}
	}

	req, err := BuildRequest(sess.Profile, *sess.Checkout, in)
	if err != nil {
		return out, err
	}

	res, err := s.Backend.ProcessPayment(ctx, sess.Token, req)
	if err != nil {
		return out, err
	}

	if !res.Success {
		out.Success = false
		out.Message = res.Message
		if out.Message == "" {
			out.Message = "Payment failed. Please try again."
		}
		utils.LogEvent(s.RequestID, "payment", "process", fmt.Sprintf("declined amount=%s method=%s", utils.FormatMoney(req.Amount), req.PaymentMethod))
		return out, nil
	}

	if s.Sessions != nil {
		if err := s.Sessions.SaveCheckout(ctx, sess.ID, nil); err != nil {
			utils.LogEvent(s.RequestID, "payment", "process", "failed to clear checkout: "+err.Error())
		}
	}

	out = PaymentOutcome{
		Success:         true,
		Message:         "Payment successful! Your booking is confirmed.",
		TransactionID:   res.TransactionID,
		Redirect:        bookingsPath,
		RedirectAfterMs: redirectAfterMs,
	}
	utils.LogEvent(s.RequestID, "payment", "process", fmt.Sprintf("ok amount=%s method=%s txn=%s", utils.FormatMoney(req.Amount), req.PaymentMethod, res.TransactionID))
	return out, nil
}
