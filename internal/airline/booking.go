package airline

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/models"
	"github.com/zulandar/flightdesk/internal/prompt"
	"github.com/zulandar/flightdesk/internal/validate"
)

// NoReservation is the state of a (customer, flight) pair with no row.
const NoReservation models.ReservationStatus = ""

const customerExistsSQL = "SELECT 1 FROM customer WHERE id = ?"

// ValidTransitions maps each reservation state to the states it may move to.
// From NoReservation the flight's fullness narrows the choice; see Options.
var ValidTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	NoReservation:           {models.StatusConfirmed, models.StatusReserved, models.StatusWaitlisted},
	models.StatusReserved:   {models.StatusConfirmed},
	models.StatusWaitlisted: nil,
	models.StatusConfirmed:  nil,
}

// Options returns the states the operator may choose from state. A new
// reservation on a full flight can only be waitlisted; on a flight with free
// seats it is confirmed or reserved directly.
func Options(state models.ReservationStatus, isFull bool) []models.ReservationStatus {
	var opts []models.ReservationStatus
	for _, to := range ValidTransitions[state] {
		if state == NoReservation && (to == models.StatusWaitlisted) != isFull {
			continue
		}
		opts = append(opts, to)
	}
	return opts
}

// BookingState is what the booking workflow knows about a (customer, flight)
// pair. Seats and Sold are only read when no reservation exists.
type BookingState struct {
	CustomerID   int
	FlightNumber int
	Reservation  *models.Reservation
	Seats        int
	Sold         int
	IsFull       bool
}

// Status returns the reservation status or NoReservation.
func (b *BookingState) Status() models.ReservationStatus {
	if b.Reservation == nil {
		return NoReservation
	}
	return b.Reservation.Status
}

// LookupBooking reads the current reservation for the pair and, when there
// is none, the flight's capacity from its first assigned plane.
func LookupBooking(store *db.Executor, customerID, flightNumber int) (*BookingState, error) {
	ok, err := store.Exists(customerExistsSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("airline: check customer %d: %w", customerID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
	}

	st := &BookingState{CustomerID: customerID, FlightNumber: flightNumber}

	r := models.Reservation{CustomerID: customerID, FlightNumber: flightNumber}
	err = store.Row("SELECT rnum, status FROM reservation WHERE cid = ? AND fid = ?", customerID, flightNumber).
		Scan(&r.Number, &r.Status)
	switch {
	case err == nil:
		st.Reservation = &r
		return st, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("airline: read reservation for customer %d flight %d: %w", customerID, flightNumber, err)
	}

	err = store.Row(`SELECT f.num_sold, p.seats FROM flight f
		JOIN flightinfo fi ON fi.flight_id = f.fnum
		JOIN plane p ON p.id = fi.plane_id
		WHERE f.fnum = ? ORDER BY fi.fiid LIMIT 1`, flightNumber).Scan(&st.Sold, &st.Seats)
	if errors.Is(err, sql.ErrNoRows) {
		exists, xerr := store.Exists(flightExistsSQL, flightNumber)
		if xerr != nil {
			return nil, fmt.Errorf("airline: check flight %d: %w", flightNumber, xerr)
		}
		if !exists {
			return nil, fmt.Errorf("%w: flight %d", ErrNotFound, flightNumber)
		}
		return nil, fmt.Errorf("%w: flight %d", ErrNoPlaneAssigned, flightNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("airline: read capacity of flight %d: %w", flightNumber, err)
	}
	st.IsFull = st.Sold >= st.Seats
	return st, nil
}

// ApplyBooking moves the pair's reservation to target. The state is re-read
// inside the transaction and target must be one of its Options. A new
// Reserved or Confirmed reservation also counts as a sold ticket.
func ApplyBooking(store *db.Executor, customerID, flightNumber int, target models.ReservationStatus) (*models.Reservation, error) {
	var out *models.Reservation
	err := store.Transaction(func(tx *db.Executor) error {
		st, err := LookupBooking(tx, customerID, flightNumber)
		if err != nil {
			return err
		}
		from := st.Status()
		if !slices.Contains(Options(from, st.IsFull), target) {
			return fmt.Errorf("%w: %q to %q for customer %d flight %d",
				ErrInvalidTransition, from, target, customerID, flightNumber)
		}

		if st.Reservation != nil {
			n, err := tx.Exec("UPDATE reservation SET status = ? WHERE rnum = ? AND status = ?",
				string(target), st.Reservation.Number, string(from))
			if err != nil {
				return fmt.Errorf("airline: update reservation %d: %w", st.Reservation.Number, err)
			}
			if n == 0 {
				return fmt.Errorf("%w: reservation %d changed", ErrInvalidTransition, st.Reservation.Number)
			}
			st.Reservation.Status = target
			out = st.Reservation
			return nil
		}

		rnum, err := nextID(tx, "reservation", "rnum")
		if err != nil {
			return err
		}
		_, err = tx.Exec("INSERT INTO reservation (rnum, cid, fid, status) VALUES (?, ?, ?, ?)",
			rnum, customerID, flightNumber, string(target))
		if err != nil {
			return insertErr("reservation", rnum, err)
		}
		if target != models.StatusWaitlisted {
			if _, err := tx.Exec("UPDATE flight SET num_sold = num_sold + 1 WHERE fnum = ?", flightNumber); err != nil {
				return fmt.Errorf("airline: count ticket on flight %d: %w", flightNumber, err)
			}
		}
		out = &models.Reservation{Number: rnum, CustomerID: customerID, FlightNumber: flightNumber, Status: target}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BookFlight walks the operator through booking a customer on a flight.
func BookFlight(s *Session) error {
	s.intro()

	cid, err := s.askExistingID("Customer id", "Customer", customerExistsSQL)
	if err != nil {
		return err
	}
	fnum, err := s.askExistingID("Flight number", "Flight", flightExistsSQL)
	if err != nil {
		return err
	}
	st, err := LookupBooking(s.Store, cid, fnum)
	if err != nil {
		return err
	}

	var target models.ReservationStatus
	switch st.Status() {
	case NoReservation:
		if st.IsFull {
			s.Prompt.Printf("Flight %d is full (%d of %d seats sold).\n", fnum, st.Sold, st.Seats)
			yes, err := prompt.Ask(s.Prompt, "Add the customer to the waitlist? (y/n)", validate.YesNo)
			if err != nil {
				return err
			}
			if !yes {
				s.Prompt.Println("No reservation was made.")
				return nil
			}
			target = models.StatusWaitlisted
		} else {
			s.Prompt.Printf("Flight %d has seats available (%d of %d sold).\n", fnum, st.Sold, st.Seats)
			if target, err = prompt.Ask(s.Prompt, "Confirm or reserve the seat? (C/R)", validate.BookingChoice); err != nil {
				return err
			}
		}
	case models.StatusReserved:
		s.Prompt.Printf("Reservation %d is %s.\n", st.Reservation.Number, st.Status())
		yes, err := prompt.Ask(s.Prompt, "Confirm the reservation? (y/n)", validate.YesNo)
		if err != nil {
			return err
		}
		if !yes {
			s.Prompt.Println("The reservation stays Reserved.")
			return nil
		}
		target = models.StatusConfirmed
	default:
		s.Prompt.Printf("Reservation %d is %s.\n", st.Reservation.Number, st.Status())
		return nil
	}

	res, err := ApplyBooking(s.Store, cid, fnum, target)
	if err != nil {
		return err
	}
	s.Log.Infow("reservation saved", "rnum", res.Number, "cid", cid, "fnum", fnum,
		"from", string(st.Status()), "to", string(res.Status))
	s.Prompt.Success("Reservation (%d) is now %s", res.Number, res.Status)
	return nil
}
