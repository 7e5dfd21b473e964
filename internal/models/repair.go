package models

// Repair records maintenance done on a plane.
type Repair struct {
	ID           int    `gorm:"column:rid;primaryKey;autoIncrement:false"`
	RepairDate   string `gorm:"type:date;not null"`
	RepairCode   string `gorm:"size:10"`
	PlaneID      int    `gorm:"not null;index"`
	TechnicianID *int
}

func (Repair) TableName() string { return "repairs" }
