package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"busfront/internal/backend"
	"busfront/internal/domain"
	"busfront/internal/session"
	"busfront/internal/utils"
)

// ReceiptService renders a booking receipt PDF from the refreshed booking
// list.
type ReceiptService struct {
	Backend   *backend.Client
	RequestID string
	Loader    func(context.Context, session.Session, string) (receiptData, error)
}

type receiptData struct {
	BookingNumber string
	PassengerName string
	BusNumber     string
	Source        string
	Destination   string
	DepartureTime string
	SeatNumber    string
	Status        string
	PaymentStatus string
	TotalAmount   float64
}

func (s ReceiptService) Generate(ctx context.Context, sess session.Session, bookingNumber string) ([]byte, string, error) {
	data, err := s.load(ctx, sess, bookingNumber)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", "booking_number="+bookingNumber)
	return buildReceiptPDF(data)
}

func (s ReceiptService) load(ctx context.Context, sess session.Session, bookingNumber string) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, sess, bookingNumber)
	}

	var out receiptData
	actions := BookingActions{Backend: s.Backend, RequestID: s.RequestID}
	bookings, err := actions.List(ctx, sess)
	if err != nil {
		return out, err
	}

	for _, b := range bookings {
		if !strings.EqualFold(strings.TrimSpace(b.BookingNumber), strings.TrimSpace(bookingNumber)) {
			continue
		}
		out.BookingNumber = b.BookingNumber
		out.PassengerName = sess.Profile.FullName
		out.SeatNumber = b.SeatLabelOf()
		out.Status = b.Status
		out.PaymentStatus = b.PaymentStatus
		out.TotalAmount = b.TotalAmount
		if b.Bus != nil {
			out.BusNumber = b.Bus.BusNumber
			out.Source = b.Bus.Source
			out.Destination = b.Bus.Destination
			out.DepartureTime = b.Bus.DepartureTime
		}
		return out, nil
	}
	return out, domain.NotFoundError{Resource: "booking"}
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No   : %s", safe(d.BookingNumber, "-")),
		fmt.Sprintf("Passenger    : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Bus          : %s", safe(d.BusNumber, "-")),
		fmt.Sprintf("Route        : %s -> %s", safe(d.Source, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Departure    : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Seat         : %s", safe(d.SeatNumber, "-")),
		fmt.Sprintf("Status       : %s", safe(d.Status, "-")),
		fmt.Sprintf("Payment      : %s", safe(d.PaymentStatus, "-")),
		fmt.Sprintf("Amount       : %s", utils.FormatINR(d.TotalAmount)),
		fmt.Sprintf("Issued       : %s", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this receipt covers 1 passenger (1 seat). Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("receipt-%s.pdf", safeFilenamePart(d.BookingNumber))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	return replacer.Replace(s)
}
