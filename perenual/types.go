package perenual

import "strings"

// PlantData is the provider's native record shape, shared by the search
// summaries and the detail endpoint. Every field is optional on the wire, so
// the zero value of each field is a legal decode result.
type PlantData struct {
	ID             int      `json:"id"`
	CommonName     string   `json:"common_name"`
	ScientificName []string `json:"scientific_name"`
	Sunlight       []string `json:"sunlight"`
	Watering       string   `json:"watering"`
	DefaultImage   *Image   `json:"default_image"`
}

type Image struct {
	Thumbnail string `json:"thumbnail"`
}

// Thumbnail returns the thumbnail URL or "".
func (d *PlantData) Thumbnail() string {
	if d.DefaultImage == nil {
		return ""
	}
	return d.DefaultImage.Thumbnail
}

// FirstScientificName returns the first element of the scientific name list,
// or nil when the provider sent none.
func (d *PlantData) FirstScientificName() *string {
	if len(d.ScientificName) == 0 {
		return nil
	}
	name := d.ScientificName[0]
	return &name
}

// Usable reports whether the record carries enough data to materialize a
// catalog entry from it.
func (d *PlantData) Usable() bool {
	return d != nil && d.ID > 0 && strings.TrimSpace(d.CommonName) != ""
}

// CareGuide is one section of the provider's care guide list.
type CareGuide struct {
	ID      int           `json:"id"`
	Section []CareSection `json:"section"`
}

type CareSection struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type searchEnvelope struct {
	Data []PlantData `json:"data"`
}

type careEnvelope struct {
	Data []CareGuide `json:"data"`
}

// SunlightToLight maps the provider's sunlight labels onto the catalog's
// light levels, defaulting to "indirecte" for unknown or absent values.
func SunlightToLight(sunlight []string) string {
	if len(sunlight) == 0 {
		return "indirecte"
	}
	key := strings.ToLower(sunlight[0])
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "full_sun":
		return "directe"
	case "part_sun", "part_shade":
		return "indirecte"
	case "full_shade":
		return "faible"
	default:
		return "indirecte"
	}
}

// WateringToInterval derives a watering interval in days from the provider's
// free-text watering field. First match wins.
func WateringToInterval(watering string) int {
	w := strings.ToLower(watering)
	switch {
	case strings.Contains(w, "frequent"), strings.Contains(w, "daily"):
		return 3
	case strings.Contains(w, "average"), strings.Contains(w, "regular"):
		return 7
	case strings.Contains(w, "minimum"), strings.Contains(w, "rare"):
		return 14
	default:
		return 7
	}
}
