package airline

import (
	"fmt"
	"strconv"

	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/models"
	"github.com/zulandar/flightdesk/internal/prompt"
	"github.com/zulandar/flightdesk/internal/validate"
)

// RepairsPerPlane counts repairs for each plane, most repaired first.
func RepairsPerPlane(store *db.Executor) (*db.Result, error) {
	res, err := store.Query(`SELECT plane_id, COUNT(*) AS repairs FROM repairs
		GROUP BY plane_id ORDER BY repairs DESC, plane_id`)
	if err != nil {
		return nil, fmt.Errorf("airline: repairs per plane: %w", err)
	}
	return res, nil
}

// yearExpr extracts the year of repairs.repair_date for the active dialect.
// The sqlite driver stores dates as text beginning with the year.
func yearExpr(dialect string) string {
	switch dialect {
	case "sqlite":
		return "CAST(substr(repair_date, 1, 4) AS INTEGER)"
	case "mysql":
		return "YEAR(repair_date)"
	default:
		return "CAST(EXTRACT(YEAR FROM repair_date) AS INTEGER)"
	}
}

// RepairsPerYear counts repairs for each calendar year, least busy first.
func RepairsPerYear(store *db.Executor) (*db.Result, error) {
	y := yearExpr(store.Dialect())
	q := fmt.Sprintf(`SELECT %s AS repair_year, COUNT(*) AS repairs FROM repairs
		GROUP BY %s ORDER BY repairs ASC, repair_year`, y, y)
	res, err := store.Query(q)
	if err != nil {
		return nil, fmt.Errorf("airline: repairs per year: %w", err)
	}
	return res, nil
}

// PassengerCount returns how many reservations on the flight have status.
func PassengerCount(store *db.Executor, flightNumber int, status models.ReservationStatus) (int, error) {
	var n int
	err := store.Row("SELECT COUNT(*) FROM reservation WHERE fid = ? AND status = ?", flightNumber, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("airline: count %s passengers on flight %d: %w", status, flightNumber, err)
	}
	return n, nil
}

// PassengersWithStatus is PassengerCount as a one-row table.
func PassengersWithStatus(store *db.Executor, flightNumber int, status models.ReservationStatus) (*db.Result, error) {
	n, err := PassengerCount(store, flightNumber, status)
	if err != nil {
		return nil, err
	}
	return &db.Result{
		Columns: []string{"flight", "status", "passengers"},
		Rows:    [][]string{{strconv.Itoa(flightNumber), status.String(), strconv.Itoa(n)}},
	}, nil
}

// AvailableSeats returns the free seats of the flight departing on date:
// the seats of its first assigned plane less every reservation that is not
// waitlisted. Capacity comes from the same assignment booking checks.
func AvailableSeats(store *db.Executor, flightNumber int, date string) (*db.Result, error) {
	res, err := store.Query(`SELECT f.fnum AS flight, f.actual_departure_date AS departure,
			p.seats - (SELECT COUNT(*) FROM reservation r WHERE r.fid = f.fnum AND r.status <> ?) AS available
		FROM flight f
		JOIN flightinfo fi ON fi.flight_id = f.fnum
			AND fi.fiid = (SELECT MIN(fiid) FROM flightinfo WHERE flight_id = f.fnum)
		JOIN plane p ON p.id = fi.plane_id
		WHERE f.fnum = ? AND f.actual_departure_date = ?`, string(models.StatusWaitlisted), flightNumber, date)
	if err != nil {
		return nil, fmt.Errorf("airline: available seats on flight %d: %w", flightNumber, err)
	}
	return res, nil
}

// ListAvailableSeats asks for a flight and departure date and prints its
// free seats.
func ListAvailableSeats(s *Session) error {
	s.intro()
	fnum, err := s.askExistingID("Flight number", "Flight", flightExistsSQL)
	if err != nil {
		return err
	}
	date, err := s.askPastOrFutureDate("Departure")
	if err != nil {
		return err
	}
	res, err := AvailableSeats(s.Store, fnum, date)
	if err != nil {
		return err
	}
	res.Print(s.Prompt.Out())
	return nil
}

func ListRepairsPerPlane(s *Session) error {
	res, err := RepairsPerPlane(s.Store)
	if err != nil {
		return err
	}
	res.Print(s.Prompt.Out())
	return nil
}

func ListRepairsPerYear(s *Session) error {
	res, err := RepairsPerYear(s.Store)
	if err != nil {
		return err
	}
	res.Print(s.Prompt.Out())
	return nil
}

// ListPassengers asks for a flight and a status and prints how many
// passengers hold it.
func ListPassengers(s *Session) error {
	s.intro()
	fnum, err := s.askExistingID("Flight number", "Flight", flightExistsSQL)
	if err != nil {
		return err
	}
	status, err := prompt.Ask(s.Prompt, "Status (W, C or R)", validate.Status)
	if err != nil {
		return err
	}
	res, err := PassengersWithStatus(s.Store, fnum, status)
	if err != nil {
		return err
	}
	res.Print(s.Prompt.Out())
	return nil
}
