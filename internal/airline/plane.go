package airline

import (
	"fmt"

	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/models"
	"github.com/zulandar/flightdesk/internal/prompt"
	"github.com/zulandar/flightdesk/internal/validate"
)

const planeExistsSQL = "SELECT 1 FROM plane WHERE id = ?"

// CreatePlane inserts a plane whose id is not yet taken.
func CreatePlane(store *db.Executor, p models.Plane) error {
	exists, err := store.Exists(planeExistsSQL, p.ID)
	if err != nil {
		return fmt.Errorf("airline: check plane %d: %w", p.ID, err)
	}
	if exists {
		return fmt.Errorf("%w: plane %d", ErrDuplicate, p.ID)
	}
	_, err = store.Exec("INSERT INTO plane (id, make, model, year, seats) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.Make, p.Model, p.Year, p.Seats)
	if err != nil {
		return insertErr("plane", p.ID, err)
	}
	return nil
}

// AddPlane collects a plane from the operator and saves it.
func AddPlane(s *Session) error {
	s.intro()
	l := s.Limits

	id, err := s.askNewID("Plane id", "Plane", planeExistsSQL)
	if err != nil {
		return err
	}
	maker, err := prompt.Ask(s.Prompt, "Make", validate.Text(l.MaxMakeLen))
	if err != nil {
		return err
	}
	model, err := prompt.Ask(s.Prompt, "Model", validate.Text(l.MaxMakeLen))
	if err != nil {
		return err
	}
	year, err := prompt.Ask(s.Prompt, fmt.Sprintf("Year (%d-%d)", l.PlaneYearMin, l.PlaneYearMax),
		validate.IntBetween(l.PlaneYearMin, l.PlaneYearMax))
	if err != nil {
		return err
	}
	seats, err := prompt.Ask(s.Prompt, fmt.Sprintf("Seats (1-%d)", l.MaxSeats), validate.IntBetween(1, l.MaxSeats))
	if err != nil {
		return err
	}

	p := models.Plane{ID: id, Make: maker, Model: model, Year: year, Seats: seats}
	if err := CreatePlane(s.Store, p); err != nil {
		return err
	}
	s.Log.Infow("plane created", "id", id, "make", maker, "model", model, "year", year, "seats", seats)
	s.Prompt.Success("Plane (%d) successfully created", id)
	return nil
}
