package airline

import (
	"fmt"

	"github.com/zulandar/flightdesk/internal/db"
	"github.com/zulandar/flightdesk/internal/models"
	"github.com/zulandar/flightdesk/internal/prompt"
	"github.com/zulandar/flightdesk/internal/validate"
)

const (
	pilotExistsSQL      = "SELECT 1 FROM pilot WHERE id = ?"
	technicianExistsSQL = "SELECT 1 FROM technician WHERE id = ?"
)

// CreatePilot inserts a pilot whose id is not yet taken.
func CreatePilot(store *db.Executor, p models.Pilot) error {
	exists, err := store.Exists(pilotExistsSQL, p.ID)
	if err != nil {
		return fmt.Errorf("airline: check pilot %d: %w", p.ID, err)
	}
	if exists {
		return fmt.Errorf("%w: pilot %d", ErrDuplicate, p.ID)
	}
	_, err = store.Exec("INSERT INTO pilot (id, fullname, nationality) VALUES (?, ?, ?)",
		p.ID, p.FullName, p.Nationality)
	if err != nil {
		return insertErr("pilot", p.ID, err)
	}
	return nil
}

// AddPilot collects a pilot from the operator and saves it.
func AddPilot(s *Session) error {
	s.intro()

	id, err := s.askNewID("Pilot id", "Pilot", pilotExistsSQL)
	if err != nil {
		return err
	}
	name, err := prompt.Ask(s.Prompt, "Full name", validate.Text(s.Limits.MaxNameLen))
	if err != nil {
		return err
	}
	nationality, err := prompt.Ask(s.Prompt, "Nationality", validate.Text(s.Limits.MaxCountryLen))
	if err != nil {
		return err
	}

	if err := CreatePilot(s.Store, models.Pilot{ID: id, FullName: name, Nationality: nationality}); err != nil {
		return err
	}
	s.Log.Infow("pilot created", "id", id)
	s.Prompt.Success("Pilot (%d) successfully created", id)
	return nil
}

// CreateTechnician inserts a technician whose id is not yet taken.
func CreateTechnician(store *db.Executor, t models.Technician) error {
	exists, err := store.Exists(technicianExistsSQL, t.ID)
	if err != nil {
		return fmt.Errorf("airline: check technician %d: %w", t.ID, err)
	}
	if exists {
		return fmt.Errorf("%w: technician %d", ErrDuplicate, t.ID)
	}
	_, err = store.Exec("INSERT INTO technician (id, full_name) VALUES (?, ?)", t.ID, t.FullName)
	if err != nil {
		return insertErr("technician", t.ID, err)
	}
	return nil
}

// AddTechnician collects a technician from the operator and saves it.
func AddTechnician(s *Session) error {
	s.intro()

	id, err := s.askNewID("Technician id", "Technician", technicianExistsSQL)
	if err != nil {
		return err
	}
	name, err := prompt.Ask(s.Prompt, "Full name", validate.Text(s.Limits.MaxNameLen))
	if err != nil {
		return err
	}

	if err := CreateTechnician(s.Store, models.Technician{ID: id, FullName: name}); err != nil {
		return err
	}
	s.Log.Infow("technician created", "id", id)
	s.Prompt.Success("Technician (%d) successfully created", id)
	return nil
}
