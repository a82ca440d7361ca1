package domain

import "fmt"

// Seat is a table position 0..3. Seats 0/2 and 1/3 are partners.
type Seat uint8

// SeatCount is the number of seats at the table.
const SeatCount = 4

// Next returns the seat to the left.
func (s Seat) Next() Seat { return (s + 1) % SeatCount }

// Prev returns the seat to the right.
func (s Seat) Prev() Seat { return (s + 3) % SeatCount }

// Partner returns the opposite seat.
func (s Seat) Partner() Seat { return (s + 2) % SeatCount }

// Party returns 0 or 1, identifying the partnership the seat belongs to.
func (s Seat) Party() Seat { return s % 2 }

func (s Seat) String() string { return fmt.Sprintf("Seat(%d)", uint8(s)) }

// containsSeat reports whether seat is in seats.
func containsSeat(seats []Seat, seat Seat) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}
