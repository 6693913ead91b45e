package model

import (
	"strings"
	"time"
)

// Room exposures, the 8 compass directions.
const (
	ExposureNord      = "nord"
	ExposureSud       = "sud"
	ExposureEst       = "est"
	ExposureOuest     = "ouest"
	ExposureNordEst   = "nord_est"
	ExposureNordOuest = "nord_ouest"
	ExposureSudEst    = "sud_est"
	ExposureSudOuest  = "sud_ouest"
)

// Preferred light levels for a species.
const (
	LightFaible    = "faible"
	LightIndirecte = "indirecte"
	LightDirecte   = "directe"
	LightVariable  = "variable"
)

// Shelf and interval bounds shared by validation paths.
const (
	MinShelfCount       = 1
	MaxShelfCount       = 10
	MinWateringInterval = 1
	MaxWateringInterval = 365
	DefaultInterval     = 7
	DefaultPotColor     = "#8B4513"
)

// RoomExposures lists the accepted room exposure values.
var RoomExposures = []string{
	ExposureNord, ExposureSud, ExposureEst, ExposureOuest,
	ExposureNordEst, ExposureNordOuest, ExposureSudEst, ExposureSudOuest,
}

// LightLevels lists the accepted species light levels.
var LightLevels = []string{LightFaible, LightIndirecte, LightDirecte, LightVariable}

// User is the identity boundary stub: the rest of the system only needs an
// ownership key and a bearer token.
type User struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	Token     string    `json:"-" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
}

// Room is a "pièce": a named space with a fixed number of shelves.
type Room struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	UserID      uint64    `json:"-" gorm:"uniqueIndex:idx_room_owner_name"`
	Name        string    `json:"name" gorm:"uniqueIndex:idx_room_owner_name"`
	Exposure    string    `json:"exposure"`
	Description string    `json:"description"`
	ShelfCount  int       `json:"shelfCount" gorm:"default:3"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Species is a shared, owner-agnostic catalog entry. PerenualID carries the
// external catalog identifier and is unique when present, which is what stops
// concurrent materialization from duplicating an entry.
type Species struct {
	ID                   uint64    `json:"id" gorm:"primaryKey"`
	CommonName           string    `json:"commonName"`
	ScientificName       *string   `json:"scientificName,omitempty"`
	PerenualID           *int      `json:"perenualId,omitempty" gorm:"uniqueIndex"`
	WateringIntervalDays int       `json:"wateringIntervalDays" gorm:"default:7"`
	PreferredLight       string    `json:"preferredLight" gorm:"default:indirecte"`
	PotColor             string    `json:"potColor" gorm:"default:#8B4513"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Plant is an owned plant instance placed on a shelf of a room.
type Plant struct {
	ID            uint64    `json:"id" gorm:"primaryKey"`
	UserID        uint64    `json:"-" gorm:"index"`
	SpeciesID     uint64    `json:"-"`
	Species       Species   `json:"species" gorm:"foreignKey:SpeciesID;references:ID"`
	RoomID        uint64    `json:"roomId" gorm:"index"`
	CustomName    *string   `json:"customName,omitempty"`
	Shelf         int       `json:"shelf" gorm:"default:1"`
	Position      int       `json:"position" gorm:"default:0"`
	LastWateredAt time.Time `json:"lastWateredAt"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DisplayName returns the custom name when set, else the species common name.
func (p *Plant) DisplayName() string {
	if p.CustomName != nil && strings.TrimSpace(*p.CustomName) != "" {
		return *p.CustomName
	}
	return p.Species.CommonName
}

// ValidExposure reports whether e is one of the 8 compass exposures.
func ValidExposure(e string) bool {
	for _, v := range RoomExposures {
		if v == e {
			return true
		}
	}
	return false
}

// ValidLight reports whether l is one of the 4 light levels.
func ValidLight(l string) bool {
	for _, v := range LightLevels {
		if v == l {
			return true
		}
	}
	return false
}
