package services

import (
	"context"
	"testing"

	"busfront/internal/session"
)

func TestReceiptServiceGenerate(t *testing.T) {
	loader := func(ctx context.Context, sess session.Session, bookingNumber string) (receiptData, error) {
		return receiptData{
			BookingNumber: bookingNumber,
			PassengerName: "Alice Rao",
			BusNumber:     "KA-01",
			Source:        "Bangalore",
			Destination:   "Chennai",
			DepartureTime: "2024-03-01T22:00:00",
			SeatNumber:    "A1",
			Status:        "CONFIRMED",
			PaymentStatus: "PAID",
			TotalAmount:   450,
		}, nil
	}

	svc := ReceiptService{Loader: loader}

	pdf, filename, err := svc.Generate(context.Background(), testSession(), "BK-1001")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Generate returned empty data")
	}
	if filename != "receipt-BK-1001.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}
