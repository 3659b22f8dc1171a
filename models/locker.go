package models

import "time"

// LockerSize is the physical size class of a locker.
type LockerSize string

const (
	LockerChico   LockerSize = "chico"
	LockerMediano LockerSize = "mediano"
	LockerGrande  LockerSize = "grande"
)

// Locker zones.
const (
	ZoneCaballeros = "Caballeros"
	ZoneDamas      = "Damas"
)

// Locker is a rentable locker in a unit's changing room.
type Locker struct {
	ID          string     `bson:"id" json:"id"`
	Number      string     `bson:"number" json:"number"`
	Zone        string     `bson:"zone" json:"zone"`
	Size        LockerSize `bson:"size" json:"size"`
	IsAvailable bool       `bson:"is_available" json:"is_available"`
	UnitID      string     `bson:"unit_id" json:"unit_id,omitempty"`
	Unit        *Unit      `bson:"-" json:"unit,omitempty"`
}

// UnitName returns the name of the unit the locker belongs to, if known.
func (l Locker) UnitName() string {
	if l.Unit == nil {
		return ""
	}
	return l.Unit.Name
}

// LockerRental is a quarterly lease of a locker.
type LockerRental struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id,omitempty"`
	LockerID    string    `bson:"locker_id" json:"locker_id,omitempty"`
	Locker      Locker    `bson:"-" json:"locker"`
	AutoRenew   bool      `bson:"auto_renew" json:"auto_renew"`
	Status      string    `bson:"status" json:"status,omitempty"`
	PeriodStart time.Time `bson:"period_start" json:"period_start"`
	PeriodEnd   time.Time `bson:"period_end" json:"period_end"`
}

// RentalPeriodMonths is the length of one locker lease.
const RentalPeriodMonths = 3
