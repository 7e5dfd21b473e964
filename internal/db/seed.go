package db

import (
	"fmt"
	"os"

	"github.com/zulandar/flightdesk/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixtures is reference data loaded with `fd db seed`. Customers have no
// data-entry workflow, so this is the only way to add them.
type Fixtures struct {
	Customers   []CustomerFixture   `yaml:"customers"`
	Planes      []PlaneFixture      `yaml:"planes"`
	Pilots      []PilotFixture      `yaml:"pilots"`
	Technicians []TechnicianFixture `yaml:"technicians"`
	Repairs     []RepairFixture     `yaml:"repairs"`
}

// CustomerFixture is one customer. A missing dob is stored as NULL.
type CustomerFixture struct {
	ID        int     `yaml:"id"`
	FirstName string  `yaml:"first_name"`
	LastName  string  `yaml:"last_name"`
	Gender    string  `yaml:"gender"`
	DOB       *string `yaml:"dob"`
	Address   string  `yaml:"address"`
	Phone     string  `yaml:"phone"`
	Zipcode   string  `yaml:"zipcode"`
}

type PlaneFixture struct {
	ID    int    `yaml:"id"`
	Make  string `yaml:"make"`
	Model string `yaml:"model"`
	Year  int    `yaml:"year"`
	Seats int    `yaml:"seats"`
}

type PilotFixture struct {
	ID          int    `yaml:"id"`
	FullName    string `yaml:"full_name"`
	Nationality string `yaml:"nationality"`
}

type TechnicianFixture struct {
	ID       int    `yaml:"id"`
	FullName string `yaml:"full_name"`
}

type RepairFixture struct {
	ID           int    `yaml:"id"`
	Date         string `yaml:"date"`
	Code         string `yaml:"code"`
	PlaneID      int    `yaml:"plane_id"`
	TechnicianID *int   `yaml:"technician_id"`
}

// SeedCounts reports how many fixture rows of each kind were processed.
type SeedCounts struct {
	Customers, Planes, Pilots, Technicians, Repairs int
}

// LoadFixtures reads a YAML fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("db: read fixtures %s: %w", path, err)
	}
	return ParseFixtures(data)
}

// ParseFixtures unmarshals and checks fixture YAML.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("db: parse fixtures: %w", err)
	}
	for i, c := range f.Customers {
		if c.ID <= 0 {
			return nil, fmt.Errorf("db: customers[%d]: id must be positive", i)
		}
	}
	for i, p := range f.Planes {
		if p.ID <= 0 || p.Seats <= 0 {
			return nil, fmt.Errorf("db: planes[%d]: id and seats must be positive", i)
		}
	}
	for i, r := range f.Repairs {
		if r.ID <= 0 || r.PlaneID <= 0 || r.Date == "" {
			return nil, fmt.Errorf("db: repairs[%d]: id, plane_id and date are required", i)
		}
	}
	return &f, nil
}

// Seed inserts fixture rows in one transaction. Rows whose primary key already
// exists are left untouched.
func Seed(db *gorm.DB, f *Fixtures) (SeedCounts, error) {
	var counts SeedCounts
	err := db.Transaction(func(tx *gorm.DB) error {
		create := func(v any) error {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(v).Error
		}

		for _, c := range f.Customers {
			row := models.Customer{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName,
				Gender: c.Gender, DOB: c.DOB, Address: c.Address, Phone: c.Phone, Zipcode: c.Zipcode}
			if err := create(&row); err != nil {
				return fmt.Errorf("db: seed customer %d: %w", c.ID, err)
			}
			counts.Customers++
		}
		for _, p := range f.Planes {
			row := models.Plane{ID: p.ID, Make: p.Make, Model: p.Model, Year: p.Year, Seats: p.Seats}
			if err := create(&row); err != nil {
				return fmt.Errorf("db: seed plane %d: %w", p.ID, err)
			}
			counts.Planes++
		}
		for _, p := range f.Pilots {
			row := models.Pilot{ID: p.ID, FullName: p.FullName, Nationality: p.Nationality}
			if err := create(&row); err != nil {
				return fmt.Errorf("db: seed pilot %d: %w", p.ID, err)
			}
			counts.Pilots++
		}
		for _, t := range f.Technicians {
			row := models.Technician{ID: t.ID, FullName: t.FullName}
			if err := create(&row); err != nil {
				return fmt.Errorf("db: seed technician %d: %w", t.ID, err)
			}
			counts.Technicians++
		}
		for _, r := range f.Repairs {
			row := models.Repair{ID: r.ID, RepairDate: r.Date, RepairCode: r.Code,
				PlaneID: r.PlaneID, TechnicianID: r.TechnicianID}
			if err := create(&row); err != nil {
				return fmt.Errorf("db: seed repair %d: %w", r.ID, err)
			}
			counts.Repairs++
		}
		return nil
	})
	if err != nil {
		return SeedCounts{}, err
	}
	return counts, nil
}
