package monitor

import (
	"sync"

	"github.com/lotvision/parking-monitor/internal/logger"
)

// BookingBoard tracks operator reservations by space index. Bookings are
// in-memory session state; they do not survive a restart and are wiped
// when the active space configuration changes, since indices would no
// longer refer to the same slots.
type BookingBoard struct {
	mu     sync.Mutex
	booked map[int]bool
}

// NewBookingBoard returns an empty board.
func NewBookingBoard() *BookingBoard {
	return &BookingBoard{booked: make(map[int]bool)}
}

// Book marks a space as reserved. Returns false when it already was.
func (b *BookingBoard) Book(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.booked[index] {
		return false
	}
	b.booked[index] = true
	logger.Info("Bookings", "space #%d booked", index+1)
	return true
}

// Clear removes a reservation. Returns false when none existed.
func (b *BookingBoard) Clear(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.booked[index] {
		return false
	}
	delete(b.booked, index)
	logger.Info("Bookings", "space #%d booking cleared", index+1)
	return true
}

// Reset drops every reservation.
func (b *BookingBoard) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.booked) > 0 {
		logger.Info("Bookings", "%d bookings cleared", len(b.booked))
	}
	b.booked = make(map[int]bool)
}

// Snapshot returns a copy of the reservation set, keyed by space index.
func (b *BookingBoard) Snapshot() map[int]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[int]bool, len(b.booked))
	for k, v := range b.booked {
		out[k] = v
	}
	return out
}
