package models

// ReservationStatus is the single-letter status stored on a reservation.
type ReservationStatus string

const (
	StatusWaitlisted ReservationStatus = "W"
	StatusReserved   ReservationStatus = "R"
	StatusConfirmed  ReservationStatus = "C"
)

// String returns the human-readable status name.
func (s ReservationStatus) String() string {
	switch s {
	case StatusWaitlisted:
		return "Waitlisted"
	case StatusReserved:
		return "Reserved"
	case StatusConfirmed:
		return "Confirmed"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	return s == StatusWaitlisted || s == StatusReserved || s == StatusConfirmed
}

// Customer is a passenger. Customers are loaded from fixtures; no workflow
// creates them.
type Customer struct {
	ID        int     `gorm:"primaryKey;autoIncrement:false"`
	FirstName string  `gorm:"column:fname;size:24;not null"`
	LastName  string  `gorm:"column:lname;size:32;not null"`
	Gender    string  `gorm:"column:gtype;size:1"`
	DOB       *string `gorm:"column:dob;type:date"`
	Address   string  `gorm:"size:256"`
	Phone     string  `gorm:"size:16"`
	Zipcode   string  `gorm:"size:10"`
}

func (Customer) TableName() string { return "customer" }

// Reservation links a customer to a flight. A customer holds at most one
// reservation per flight.
type Reservation struct {
	Number       int               `gorm:"column:rnum;primaryKey;autoIncrement:false"`
	CustomerID   int               `gorm:"column:cid;not null;uniqueIndex:idx_reservation_customer_flight"`
	FlightNumber int               `gorm:"column:fid;not null;uniqueIndex:idx_reservation_customer_flight;index"`
	Status       ReservationStatus `gorm:"size:1;not null"`
}

func (Reservation) TableName() string { return "reservation" }
