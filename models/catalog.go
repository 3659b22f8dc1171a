package models

import (
	"encoding/json"
	"fmt"
)

// ItemType is the closed set of bookable catalog item kinds.
type ItemType string

const (
	// ItemActivity is a recurring class joined by period enrollment.
	ItemActivity ItemType = "activity"
	// ItemService is a slot-based appointment (spa, barber).
	ItemService ItemType = "service"
	// ItemResource is a slot-based facility booking (court, lane).
	ItemResource ItemType = "resource"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemActivity, ItemService, ItemResource:
		return true
	}
	return false
}

// SlotBased reports whether bookings of this type need a date and hour.
func (t ItemType) SlotBased() bool {
	return t == ItemService || t == ItemResource
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := ItemType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown catalog item type %q", s)
	}
	*t = v
	return nil
}

// CatalogItem is a bookable thing offered by a unit.
type CatalogItem struct {
	ID              string   `bson:"id" json:"id"`
	Name            string   `bson:"name" json:"name"`
	Category        string   `bson:"category" json:"category"`
	Type            ItemType `bson:"type" json:"type"`
	Price           float64  `bson:"price" json:"price"`
	Unit            string   `bson:"unit" json:"unit"`
	Time            string   `bson:"time" json:"time"`
	ScheduleDisplay string   `bson:"schedule_display,omitempty" json:"schedule_display,omitempty"`
}

// ItemRef is the short form of a catalog item embedded in bookings.
type ItemRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Ref returns the short form of the item.
func (c CatalogItem) Ref() *ItemRef {
	return &ItemRef{ID: c.ID, Name: c.Name}
}

// Club units.
const (
	UnitHermes      = "Hermes"
	UnitFredyAtala  = "Fredy Atala"
	CategoryAll     = "todos"
	DefaultCurrency = "mxn"
)
