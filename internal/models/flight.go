package models

// Flight is a scheduled flight. Dates are kept as entered (YYYY-M-D) in text
// columns; day numbers are not checked against the calendar.
type Flight struct {
	Number           int    `gorm:"column:fnum;primaryKey;autoIncrement:false"`
	Cost             int    `gorm:"not null"`
	NumSold          int    `gorm:"not null;default:0"`
	NumStops         int    `gorm:"not null;default:0"`
	DepartureDate    string `gorm:"column:actual_departure_date;size:10;not null;index"`
	ArrivalDate      string `gorm:"column:actual_arrival_date;size:10;not null"`
	ArrivalAirport   string `gorm:"size:5;not null"`
	DepartureAirport string `gorm:"size:5;not null"`
}

func (Flight) TableName() string { return "flight" }

// FlightInfo assigns a plane and a pilot to a flight.
type FlightInfo struct {
	ID       int `gorm:"column:fiid;primaryKey;autoIncrement:false"`
	FlightID int `gorm:"not null;index"`
	PilotID  int `gorm:"not null"`
	PlaneID  int `gorm:"not null;index"`
}

func (FlightInfo) TableName() string { return "flightinfo" }

// Schedule mirrors a flight's departure and arrival dates.
type Schedule struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false"`
	FlightNum     int    `gorm:"column:flightnum;not null;index"`
	DepartureTime string `gorm:"size:10;not null"`
	ArrivalTime   string `gorm:"size:10;not null"`
}

func (Schedule) TableName() string { return "schedule" }
