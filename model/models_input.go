package model

type RegisterInput struct {
	Username string `json:"username"`
}

type RoomInput struct {
	Name        string `json:"name"`
	Exposure    string `json:"exposure"`
	Description string `json:"description"`
	ShelfCount  int    `json:"shelfCount"`
}

type SpeciesInput struct {
	CommonName           string  `json:"commonName"`
	ScientificName       *string `json:"scientificName"`
	WateringIntervalDays int     `json:"wateringIntervalDays"`
	PreferredLight       string  `json:"preferredLight"`
}

// AddPlantInput is the resolve-and-place payload: a selection token from the
// search step plus the target coordinates.
type AddPlantInput struct {
	Token      string  `json:"token"`
	Query      string  `json:"query"`
	RoomID     uint64  `json:"roomId"`
	Shelf      int     `json:"shelf"`
	Position   int     `json:"position"`
	CustomName *string `json:"customName"`
	Notes      string  `json:"notes"`
}

type MovePlantInput struct {
	Shelf    int `json:"shelf"`
	Position int `json:"position"`
}
