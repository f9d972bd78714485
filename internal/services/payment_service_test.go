package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"busfront/internal/backend"
	"busfront/internal/domain"
)

func pendingCheckout() domain.Checkout {
	return domain.Checkout{
		BusID:         7,
		BusNumber:     "KA-01",
		TotalAmount:   900,
		SelectedSeats: []string{"A1", "A2"},
		Bookings: []domain.Booking{
			{ID: 11, BookingNumber: "BK-A1"},
			{ID: 12, BookingNumber: "BK-A2"},
		},
	}
}

func TestBuildRequest_FieldExactnessPerMethod(t *testing.T) {
	profile := domain.Profile{ID: 5}
	checkout := pendingCheckout()

	cases := []struct {
		name    string
		in      PaymentInput
		present []string
		absent  []string
	}{
		{
			name:    "upi",
			in:      PaymentInput{Method: "upi", UPIID: "alice@upi"},
			present: []string{"upiId"},
			absent:  []string{"cardNumber", "cardExpiry", "cardCvv", "accountNumber", "ifscCode", "accountHolderName"},
		},
		{
			name:    "card",
			in:      PaymentInput{Method: "card", CardNumber: "4111", CardExpiry: "12/30", CardCvv: "123"},
			present: []string{"cardNumber", "cardExpiry", "cardCvv"},
			absent:  []string{"upiId", "accountNumber", "ifscCode", "accountHolderName"},
		},
		{
			name:    "netbanking",
			in:      PaymentInput{Method: "netbanking", AccountNumber: "0012", IFSCCode: "HDFC0001", AccountHolderName: "Alice Rao"},
			present: []string{"accountNumber", "ifscCode", "accountHolderName"},
			absent:  []string{"upiId", "cardNumber", "cardExpiry", "cardCvv"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := BuildRequest(profile, checkout, tc.in)
			if err != nil {
				t.Fatalf("BuildRequest returned error: %v", err)
			}

			raw, err := json.Marshal(req)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}
			var body map[string]any
			_ = json.Unmarshal(raw, &body)

			if body["amount"] != float64(900) {
				t.Fatalf("amount = %v, want 900", body["amount"])
			}
			if body["paymentMethod"] != tc.name {
				t.Fatalf("paymentMethod = %v, want %s", body["paymentMethod"], tc.name)
			}
			ids, _ := body["bookingIds"].([]any)
			if len(ids) != 2 {
				t.Fatalf("bookingIds = %v, want the 2 created bookings", body["bookingIds"])
			}
			for _, key := range tc.present {
				if _, ok := body[key]; !ok {
					t.Fatalf("%s body missing %s: %v", tc.name, key, body)
				}
			}
			for _, key := range tc.absent {
				if _, ok := body[key]; ok {
					t.Fatalf("%s body must not carry %s: %v", tc.name, key, body)
				}
			}
		})
	}
}

func TestBuildRequest_MissingMethodFieldRejected(t *testing.T) {
	profile := domain.Profile{ID: 5}
	checkout := pendingCheckout()

	cases := []PaymentInput{
		{Method: "upi"},
		{Method: "card", CardNumber: "4111", CardExpiry: "12/30"},
		{Method: "netbanking", AccountNumber: "0012", IFSCCode: "HDFC0001"},
		{Method: "cheque"},
	}
	for _, in := range cases {
		if _, err := BuildRequest(profile, checkout, in); !domain.IsValidation(err) {
			t.Fatalf("input %+v should fail validation, got %v", in, err)
		}
	}
}

func paymentFixture(t *testing.T, handler http.HandlerFunc) PaymentService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return PaymentService{Backend: backend.New(srv.URL, 5*time.Second)}
}

func TestProcess_SuccessCarriesRedirectDelay(t *testing.T) {
	svc := paymentFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "transactionId": "TXN77", "message": "Payment processed successfully"})
	})

	checkout := pendingCheckout()
	sess := testSession()
	sess.Checkout = &checkout

	out, err := svc.Process(context.Background(), sess, PaymentInput{Method: "upi", UPIID: "alice@upi"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !out.Success || out.TransactionID != "TXN77" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Redirect != "/my-bookings" || out.RedirectAfterMs != 3000 {
		t.Fatalf("confirmation must navigate to the booking list after 3s: %+v", out)
	}
}

func TestProcess_FailureKeepsFormReenterable(t *testing.T) {
	svc := paymentFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Payment failed. Please try again."})
	})

	checkout := pendingCheckout()
	sess := testSession()
	sess.Checkout = &checkout

	out, err := svc.Process(context.Background(), sess, PaymentInput{Method: "upi", UPIID: "alice@upi"})
	if err != nil {
		t.Fatalf("a declined payment is an outcome, not an error: %v", err)
	}
	if out.Success {
		t.Fatalf("declined payment reported success")
	}
	if out.Message != "Payment failed. Please try again." {
		t.Fatalf("server message not surfaced: %q", out.Message)
	}
	if out.Redirect != "" {
		t.Fatalf("failed payment must not navigate away: %+v", out)
	}
}

func TestProcess_NoPendingCheckout(t *testing.T) {
	svc := paymentFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no backend call expected without a pending checkout")
	})

	_, err := svc.Process(context.Background(), testSession(), PaymentInput{Method: "upi", UPIID: "alice@upi"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
