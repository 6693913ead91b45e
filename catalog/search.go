package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/lemiae/PlantShelf/model"
	"github.com/lemiae/PlantShelf/perenual"
)

const (
	localSearchLimit  = 5
	remoteSearchLimit = 10
	totalSearchLimit  = 15
)

// Candidate is one ranked search result, local entries first.
type Candidate struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	ScientificName *string `json:"scientific_name,omitempty"`
	Source         string  `json:"source"`
	WateringDays   int     `json:"watering_days,omitempty"`
	Exposure       string  `json:"exposure,omitempty"`
	Thumbnail      string  `json:"thumbnail,omitempty"`
}

// Search aggregates local catalog matches with remote candidates. Queries
// shorter than 2 characters return nothing without touching the store or the
// network. A positive limit tightens the overall cap; limit <= 0 keeps the
// defaults. Remote failures are swallowed; local matches still come back.
func (r *Resolver) Search(ctx context.Context, query string, limit int) []Candidate {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return []Candidate{}
	}

	total := totalSearchLimit
	if limit > 0 && limit < total {
		total = limit
	}
	localLimit := localSearchLimit
	if total < localLimit {
		localLimit = total
	}

	results := make([]Candidate, 0, total)

	var local []model.Species
	r.db.Where(`LOWER(common_name) LIKE ? ESCAPE '\'`, "%"+likeEscape(query)+"%").
		Limit(localLimit).
		Find(&local)
	for _, sp := range local {
		results = append(results, Candidate{
			ID:             fmt.Sprintf("local_%d", sp.ID),
			Text:           sp.CommonName,
			ScientificName: sp.ScientificName,
			Source:         "local",
			WateringDays:   sp.WateringIntervalDays,
			Exposure:       sp.PreferredLight,
		})
	}

	if len(results) < remoteSearchLimit && len(results) < total {
		for _, d := range r.remote.Search(ctx, query, remoteSearchLimit) {
			if len(results) >= total {
				break
			}
			results = append(results, Candidate{
				ID:             fmt.Sprintf("api_%d", d.ID),
				Text:           TitleCase(d.CommonName),
				ScientificName: d.FirstScientificName(),
				Source:         "api",
				WateringDays:   perenual.WateringToInterval(d.Watering),
				Thumbnail:      d.Thumbnail(),
			})
		}
	}

	return results
}

// likeEscape lowercases the query and escapes the LIKE wildcards so user
// input matches literally.
func likeEscape(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(strings.ToLower(s))
}
