package models

// Plane is an aircraft in the fleet. IDs are assigned by the operator.
type Plane struct {
	ID    int    `gorm:"primaryKey;autoIncrement:false"`
	Make  string `gorm:"size:32;not null"`
	Model string `gorm:"size:64;not null"`
	Year  int    `gorm:"not null"`
	Seats int    `gorm:"not null"`
}

func (Plane) TableName() string { return "plane" }
