package airline

import (
	"fmt"

	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/models"
	"github.com/zulandar/flightdesk/internal/prompt"
	"github.com/zulandar/flightdesk/internal/validate"
)

const flightExistsSQL = "SELECT 1 FROM flight WHERE fnum = ?"

// FlightPlan is a new flight together with its plane and pilot assignment.
type FlightPlan struct {
	Flight  models.Flight
	PlaneID int
	PilotID int
}

// FlightRecord reports the keys written by CreateFlight.
type FlightRecord struct {
	FlightNumber int
	FlightInfoID int
	ScheduleID   int
}

// CreateFlight inserts the flight, its FlightInfo and its Schedule in one
// transaction. Nothing is written unless all three inserts succeed.
func CreateFlight(store *db.Executor, plan FlightPlan) (*FlightRecord, error) {
	f := plan.Flight
	rec := &FlightRecord{FlightNumber: f.Number}

	err := store.Transaction(func(tx *db.Executor) error {
		exists, err := tx.Exists(flightExistsSQL, f.Number)
		if err != nil {
			return fmt.Errorf("airline: check flight %d: %w", f.Number, err)
		}
		if exists {
			return fmt.Errorf("%w: flight %d", ErrDuplicate, f.Number)
		}
		for _, ref := range []struct {
			what, query string
			id          int
		}{
			{"plane", planeExistsSQL, plan.PlaneID},
			{"pilot", pilotExistsSQL, plan.PilotID},
		} {
			ok, err := tx.Exists(ref.query, ref.id)
			if err != nil {
				return fmt.Errorf("airline: check %s %d: %w", ref.what, ref.id, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s %d", ErrNotFound, ref.what, ref.id)
			}
		}

		_, err = tx.Exec(`INSERT INTO flight (fnum, cost, num_sold, num_stops, actual_departure_date,
			actual_arrival_date, arrival_airport, departure_airport) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.Number, f.Cost, f.NumSold, f.NumStops, f.DepartureDate, f.ArrivalDate, f.ArrivalAirport, f.DepartureAirport)
		if err != nil {
			return insertErr("flight", f.Number, err)
		}

		if rec.FlightInfoID, err = nextID(tx, "flightinfo", "fiid"); err != nil {
			return err
		}
		_, err = tx.Exec("INSERT INTO flightinfo (fiid, flight_id, pilot_id, plane_id) VALUES (?, ?, ?, ?)",
			rec.FlightInfoID, f.Number, plan.PilotID, plan.PlaneID)
		if err != nil {
			return insertErr("flightinfo", rec.FlightInfoID, err)
		}

		if rec.ScheduleID, err = nextID(tx, "schedule", "id"); err != nil {
			return err
		}
		_, err = tx.Exec("INSERT INTO schedule (id, flightnum, departure_time, arrival_time) VALUES (?, ?, ?, ?)",
			rec.ScheduleID, f.Number, f.DepartureDate, f.ArrivalDate)
		if err != nil {
			return insertErr("schedule", rec.ScheduleID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// AddFlight collects a flight, its plane and its pilot from the operator and
// saves them.
func AddFlight(s *Session) error {
	s.intro()
	var f models.Flight
	var err error

	if f.Number, err = s.askNewID("Flight number", "Flight", flightExistsSQL); err != nil {
		return err
	}
	if f.Cost, err = prompt.Ask(s.Prompt, "Cost", validate.IntAtLeast(1)); err != nil {
		return err
	}
	if f.NumSold, err = prompt.Ask(s.Prompt, "Number of tickets sold", validate.IntAtLeast(0)); err != nil {
		return err
	}
	if f.NumStops, err = prompt.Ask(s.Prompt, "Number of stops", validate.IntAtLeast(0)); err != nil {
		return err
	}
	if f.DepartureDate, err = s.askDate("Departure"); err != nil {
		return err
	}
	if f.ArrivalDate, err = s.askDate("Arrival"); err != nil {
		return err
	}
	airport := validate.Text(s.Limits.MaxAirportLen)
	if f.DepartureAirport, err = prompt.Ask(s.Prompt, "Departure airport code", airport); err != nil {
		return err
	}
	if f.ArrivalAirport, err = prompt.Ask(s.Prompt, "Arrival airport code", airport); err != nil {
		return err
	}

	plan := FlightPlan{Flight: f}
	if plan.PlaneID, err = s.askExistingID("Plane id", "Plane", planeExistsSQL); err != nil {
		return err
	}
	if plan.PilotID, err = s.askExistingID("Pilot id", "Pilot", pilotExistsSQL); err != nil {
		return err
	}

	rec, err := CreateFlight(s.Store, plan)
	if err != nil {
		return err
	}
	s.Log.Infow("flight created", "fnum", rec.FlightNumber, "fiid", rec.FlightInfoID,
		"schedule", rec.ScheduleID, "plane", plan.PlaneID, "pilot", plan.PilotID)
	s.Prompt.Success("Flight (%d) successfully created", rec.FlightNumber)
	return nil
}
