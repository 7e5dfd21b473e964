package airline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/models"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		state  models.ReservationStatus
		isFull bool
		want   []models.ReservationStatus
	}{
		{NoReservation, false, []models.ReservationStatus{models.StatusConfirmed, models.StatusReserved}},
		{NoReservation, true, []models.ReservationStatus{models.StatusWaitlisted}},
		{models.StatusReserved, false, []models.ReservationStatus{models.StatusConfirmed}},
		{models.StatusReserved, true, []models.ReservationStatus{models.StatusConfirmed}},
		{models.StatusWaitlisted, false, nil},
		{models.StatusConfirmed, true, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Options(tt.state, tt.isFull), "Options(%q, %v)", tt.state, tt.isFull)
	}
}

func TestOptions_SubsetOfTransitions(t *testing.T) {
	for from := range ValidTransitions {
		for _, full := range []bool{false, true} {
			for _, to := range Options(from, full) {
				assert.Contains(t, ValidTransitions[from], to, "Options(%q, %v) offers %q", from, full, to)
			}
		}
	}
	assert.Nil(t, Options(models.ReservationStatus("X"), false))
}

func TestValidTransitions_ConfirmedIsTerminal(t *testing.T) {
	assert.Empty(t, ValidTransitions[models.StatusConfirmed])
	assert.Empty(t, ValidTransitions[models.StatusWaitlisted])
	for from, to := range ValidTransitions {
		assert.NotContains(t, to, from, "%q must not transition to itself", from)
		assert.NotContains(t, to, NoReservation, "%q must not return to no reservation", from)
	}
}

// seedBookableFlight creates customer 7, plane 1 with seats, and flight 100
// with sold tickets on that plane.
func seedBookableFlight(t *testing.T, store *db.Executor, seats, sold int) {
	t.Helper()
	require.NoError(t, CreatePlane(store, models.Plane{ID: 1, Make: "Boeing", Model: "737", Year: 2001, Seats: seats}))
	require.NoError(t, CreatePilot(store, models.Pilot{ID: 1, FullName: "Amelia Earhart", Nationality: "American"}))
	mustExec(t, store, "INSERT INTO customer (id, fname, lname) VALUES (?, ?, ?)", 7, "Ada", "Lovelace")
	_, err := CreateFlight(store, FlightPlan{
		Flight: models.Flight{Number: 100, Cost: 250, NumSold: sold, DepartureDate: "2026-11-20",
			ArrivalDate: "2026-11-20", DepartureAirport: "LAX", ArrivalAirport: "JFK"},
		PlaneID: 1,
		PilotID: 1,
	})
	require.NoError(t, err)
}

// seedSoldReservations records n confirmed reservations on flight 100 for
// customers 1001 onwards, matching the tickets already counted as sold.
func seedSoldReservations(t *testing.T, store *db.Executor, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		cid := 1001 + i
		mustExec(t, store, "INSERT INTO customer (id, fname, lname) VALUES (?, ?, ?)", cid, "Test", "Passenger")
		mustExec(t, store, "INSERT INTO reservation (rnum, cid, fid, status) VALUES (?, ?, ?, ?)", cid, cid, 100, "C")
	}
}

func reservationStatus(t *testing.T, store *db.Executor, cid, fnum int) string {
	t.Helper()
	res, err := store.Query("SELECT status FROM reservation WHERE cid = ? AND fid = ?", cid, fnum)
	require.NoError(t, err)
	if len(res.Rows) == 0 {
		return ""
	}
	require.Len(t, res.Rows, 1)
	return res.Rows[0][0]
}

func TestLookupBooking(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 100)

	st, err := LookupBooking(store, 7, 100)
	require.NoError(t, err)
	assert.Equal(t, NoReservation, st.Status())
	assert.Equal(t, 150, st.Seats)
	assert.Equal(t, 100, st.Sold)
	assert.False(t, st.IsFull)

	_, err = LookupBooking(store, 8, 100)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = LookupBooking(store, 7, 101)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupBooking_NoPlaneAssigned(t *testing.T) {
	store := newTestStore(t)
	mustExec(t, store, "INSERT INTO customer (id, fname, lname) VALUES (?, ?, ?)", 7, "Ada", "Lovelace")
	mustExec(t, store, `INSERT INTO flight (fnum, cost, num_sold, num_stops, actual_departure_date, actual_arrival_date,
		arrival_airport, departure_airport) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, 300, 10, 0, 0, "2026-12-1", "2026-12-1", "JFK", "LAX")

	_, err := LookupBooking(store, 7, 300)
	assert.ErrorIs(t, err, ErrNoPlaneAssigned)
}

func TestBookFlight_ConfirmWithSeatsAvailable(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 100)
	seedSoldReservations(t, store, 100)

	s, out := newTestSession(t, store, answers("7", "100", "x", "c"))
	require.NoError(t, BookFlight(s))
	assert.Contains(t, out.String(), "Flight 100 has seats available (100 of 150 sold).")
	assert.Contains(t, out.String(), "Please enter C to confirm or R to reserve")
	assert.Contains(t, out.String(), "is now Confirmed")

	assert.Equal(t, "C", reservationStatus(t, store, 7, 100))

	var sold int
	require.NoError(t, store.Row("SELECT num_sold FROM flight WHERE fnum = ?", 100).Scan(&sold))
	assert.Equal(t, 101, sold)

	res, err := AvailableSeats(store, 100, "2026-11-20")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "49", res.Rows[0][2])
}

func TestBookFlight_FullFlightDeclined(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 150)

	s, out := newTestSession(t, store, answers("7", "100", "maybe", "n"))
	require.NoError(t, BookFlight(s))
	assert.Contains(t, out.String(), "Flight 100 is full (150 of 150 seats sold).")
	assert.Contains(t, out.String(), "Please answer y or n")
	assert.Contains(t, out.String(), "No reservation was made.")
	assert.Zero(t, countRows(t, store, "SELECT rnum FROM reservation"))
}

func TestBookFlight_FullFlightWaitlisted(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 150)

	s, _ := newTestSession(t, store, answers("7", "100", "y"))
	require.NoError(t, BookFlight(s))
	assert.Equal(t, "W", reservationStatus(t, store, 7, 100))

	var sold int
	require.NoError(t, store.Row("SELECT num_sold FROM flight WHERE fnum = ?", 100).Scan(&sold))
	assert.Equal(t, 150, sold, "a waitlisted reservation is not a sold ticket")

	// Waitlisted has no forward move offered.
	s, out := newTestSession(t, store, answers("7", "100"))
	require.NoError(t, BookFlight(s))
	assert.Contains(t, out.String(), "is Waitlisted.")
	assert.Equal(t, "W", reservationStatus(t, store, 7, 100))
}

func TestBookFlight_ReserveThenConfirm(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 10)

	s, _ := newTestSession(t, store, answers("7", "100", "R"))
	require.NoError(t, BookFlight(s))
	assert.Equal(t, "R", reservationStatus(t, store, 7, 100))

	s, out := newTestSession(t, store, answers("7", "100", "n"))
	require.NoError(t, BookFlight(s))
	assert.Contains(t, out.String(), "The reservation stays Reserved.")
	assert.Equal(t, "R", reservationStatus(t, store, 7, 100))

	s, _ = newTestSession(t, store, answers("7", "100", "yes"))
	require.NoError(t, BookFlight(s))
	assert.Equal(t, "C", reservationStatus(t, store, 7, 100))

	var sold int
	require.NoError(t, store.Row("SELECT num_sold FROM flight WHERE fnum = ?", 100).Scan(&sold))
	assert.Equal(t, 11, sold, "confirming a reservation sells no extra ticket")
}

func TestBookFlight_ConfirmedTwiceIsNoop(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 10)

	s, _ := newTestSession(t, store, answers("7", "100", "C"))
	require.NoError(t, BookFlight(s))

	for i := 0; i < 2; i++ {
		s, out := newTestSession(t, store, answers("7", "100"))
		require.NoError(t, BookFlight(s))
		assert.Contains(t, out.String(), "is Confirmed.")
	}
	assert.Equal(t, 1, countRows(t, store, "SELECT rnum FROM reservation"))
	assert.Equal(t, "C", reservationStatus(t, store, 7, 100))
}

func TestBookFlight_RepromptsUnknownIDs(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 10)

	s, out := newTestSession(t, store, answers("8", "7", "999", "100", "r"))
	require.NoError(t, BookFlight(s))
	assert.Contains(t, out.String(), "Customer 8 does not exist")
	assert.Contains(t, out.String(), "Flight 999 does not exist")
	assert.Equal(t, "R", reservationStatus(t, store, 7, 100))
}

func TestApplyBooking_RejectsTransitionsNotOffered(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 150)

	// Full flight: only the waitlist is offered.
	_, err := ApplyBooking(store, 7, 100, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	res, err := ApplyBooking(store, 7, 100, models.StatusWaitlisted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitlisted, res.Status)
	assert.Equal(t, 1, res.Number)

	_, err = ApplyBooking(store, 7, 100, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, "W", reservationStatus(t, store, 7, 100))
}

func TestReservation_UniquePerCustomerAndFlight(t *testing.T) {
	store := newTestStore(t)
	seedBookableFlight(t, store, 150, 10)

	mustExec(t, store, "INSERT INTO reservation (rnum, cid, fid, status) VALUES (?, ?, ?, ?)", 1, 7, 100, "R")
	_, err := store.Exec("INSERT INTO reservation (rnum, cid, fid, status) VALUES (?, ?, ?, ?)", 2, 7, 100, "C")
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKey(err))
}
