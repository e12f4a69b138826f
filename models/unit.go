package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OccupancyStatusType string

const (
	OccupancyAvailable   OccupancyStatusType = "AVAILABLE"
	OccupancyRented      OccupancyStatusType = "RENTED"
	OccupancyMaintenance OccupancyStatusType = "MAINTENANCE"
)

// ValidOccupancyStatus reports whether s is one of the closed occupancy values.
func ValidOccupancyStatus(s OccupancyStatusType) bool {
	switch s {
	case OccupancyAvailable, OccupancyRented, OccupancyMaintenance:
		return true
	}
	return false
}

// Unit represents a tenant-addressable space inside a specific building.
// OccupancyStatus is mutated only through the occupancy service.
type Unit struct {
	Versioned

	ID              uuid.UUID           `json:"id"`
	BuildingID      uuid.UUID           `json:"building_id"`
	CompanyID       uuid.UUID           `json:"company_id"`
	UnitNumber      string              `json:"unit_number"`
	MonthlyRate     decimal.Decimal     `json:"monthly_rate"`
	OccupancyStatus OccupancyStatusType `json:"occupancy_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Unit) GetID() string {
	return u.ID.String()
}
