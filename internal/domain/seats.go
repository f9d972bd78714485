package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SeatLabel builds the display label for a seat slot, 1-based ("A1", "A2"...).
func SeatLabel(index int) string {
	return "A" + strconv.Itoa(index+1)
}

// SeatIndex parses a seat label back into its 0-based index. Returns -1 for
// anything that is not an "A<n>" label with n >= 1.
func SeatIndex(label string) int {
	label = strings.ToUpper(strings.TrimSpace(label))
	if !strings.HasPrefix(label, "A") {
		return -1
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil || n < 1 {
		return -1
	}
	return n - 1
}

// Seat is one slot in the rendered seat map of a bus.
type Seat struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// SeatSelection is the in-memory selection over one loaded bus. Availability
// is a prefix of the seat index range: seat i is bookable iff
// i < availableSeats. The selection is always a subset of available seats.
type SeatSelection struct {
	bus      Bus
	selected map[string]bool
}

func NewSeatSelection(bus Bus) *SeatSelection {
	return &SeatSelection{bus: bus, selected: map[string]bool{}}
}

// Available reports whether the label denotes a bookable seat of this bus.
func (s *SeatSelection) Available(label string) bool {
	idx := SeatIndex(label)
	return idx >= 0 && idx < s.bus.AvailableSeats && idx < s.bus.TotalSeats
}

// Toggle adds the seat when absent and removes it when present. Toggling an
// unavailable seat is a no-op and reports false.
func (s *SeatSelection) Toggle(label string) bool {
	if !s.Available(label) {
		return false
	}
	label = strings.ToUpper(strings.TrimSpace(label))
	if s.selected[label] {
		delete(s.selected, label)
	} else {
		s.selected[label] = true
	}
	return true
}

// Select marks every given label, rejecting the whole set when any label is
// not an available seat.
func (s *SeatSelection) Select(labels []string) error {
	for _, label := range labels {
		if !s.Available(label) {
			return ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %s is not available", strings.TrimSpace(label))}
		}
	}
	for _, label := range labels {
		s.selected[strings.ToUpper(strings.TrimSpace(label))] = true
	}
	return nil
}

func (s *SeatSelection) Count() int { return len(s.selected) }

// Seats returns the selected labels ordered by seat index.
func (s *SeatSelection) Seats() []string {
	out := make([]string, 0, len(s.selected))
	for label := range s.selected {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return SeatIndex(out[i]) < SeatIndex(out[j]) })
	return out
}

// TotalAmount is price x selected seat count, recomputed on every call.
func (s *SeatSelection) TotalAmount() float64 {
	return s.bus.Price * float64(len(s.selected))
}

// SeatMap renders the full seat grid of the bus with the current selection.
func (s *SeatSelection) SeatMap() []Seat {
	seats := make([]Seat, 0, s.bus.TotalSeats)
	for i := 0; i < s.bus.TotalSeats; i++ {
		label := SeatLabel(i)
		seats = append(seats, Seat{
			Label:     label,
			Available: i < s.bus.AvailableSeats,
			Selected:  s.selected[label],
		})
	}
	return seats
}
