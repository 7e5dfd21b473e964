package models

// Pilot flies assigned flights.
type Pilot struct {
	ID          int    `gorm:"primaryKey;autoIncrement:false"`
	FullName    string `gorm:"column:fullname;size:128;not null"`
	Nationality string `gorm:"size:24;not null"`
}

func (Pilot) TableName() string { return "pilot" }

// Technician performs plane repairs.
type Technician struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	FullName string `gorm:"column:full_name;size:128;not null"`
}

func (Technician) TableName() string { return "technician" }
