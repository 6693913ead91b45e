// Package catalog reconciles user species selections against the local
// catalog and the Perenual remote catalog.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/lemiae/PlantShelf/apperr"
	"github.com/lemiae/PlantShelf/model"
	"github.com/lemiae/PlantShelf/perenual"
)

// Selection is what the add-plant flow hands to the resolver: the token the
// user picked during search plus the free-text they originally typed, kept as
// the fallback display name.
type Selection struct {
	Token string
	Query string
}

// Resolver turns a Selection into exactly one persisted Species.
type Resolver struct {
	db     *gorm.DB
	remote *perenual.Client
}

func NewResolver(db *gorm.DB, remote *perenual.Client) *Resolver {
	return &Resolver{db: db, remote: remote}
}

// Resolve locates or materializes the Species for sel.
//
// local_<id> must match an existing catalog entry. api_<id> reuses any entry
// already carrying that Perenual id, else materializes one from remote
// detail data, else synthesizes a minimal entry from the query text. The
// ordered fallback means a remote outage never blocks adding a plant as long
// as a name is available.
func (r *Resolver) Resolve(ctx context.Context, sel Selection) (*model.Species, error) {
	kind, id, err := parseToken(sel.Token)
	if err != nil {
		return nil, err
	}

	if kind == "local" {
		var sp model.Species
		if err := r.db.First(&sp, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("species %d", id)
			}
			return nil, err
		}
		return &sp, nil
	}

	// api_<id>: reuse before materializing, so re-selecting the same remote
	// candidate never duplicates the entry.
	if sp, err := r.byPerenualID(id); err == nil {
		return sp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if details := r.remote.Details(ctx, id); details.Usable() {
		return r.create(&model.Species{
			CommonName:           TitleCase(details.CommonName),
			ScientificName:       details.FirstScientificName(),
			PerenualID:           &id,
			WateringIntervalDays: perenual.WateringToInterval(details.Watering),
			PreferredLight:       perenual.SunlightToLight(details.Sunlight),
			PotColor:             model.DefaultPotColor,
		}, id)
	}

	name := strings.TrimSpace(sel.Query)
	if name == "" {
		return nil, apperr.Validationf("no name available for species from remote id %d", id)
	}
	return r.create(&model.Species{
		CommonName:           TitleCase(name),
		PerenualID:           &id,
		WateringIntervalDays: model.DefaultInterval,
		PreferredLight:       model.LightIndirecte,
		PotColor:             model.DefaultPotColor,
	}, id)
}

// CreateManual persists a user-authored species, defaulting interval and
// light the same way the materialization path does.
func (r *Resolver) CreateManual(input model.SpeciesInput) (*model.Species, error) {
	name := strings.TrimSpace(input.CommonName)
	if len([]rune(name)) < 2 {
		return nil, apperr.Validationf("common name must be at least 2 characters")
	}

	interval := input.WateringIntervalDays
	if interval == 0 {
		interval = model.DefaultInterval
	}
	if interval < model.MinWateringInterval || interval > model.MaxWateringInterval {
		return nil, apperr.Validationf("watering interval %d out of range %d..%d",
			interval, model.MinWateringInterval, model.MaxWateringInterval)
	}

	light := input.PreferredLight
	if light == "" {
		light = model.LightIndirecte
	}
	if !model.ValidLight(light) {
		return nil, apperr.Validationf("unknown light level %q", light)
	}

	sp := &model.Species{
		CommonName:           TitleCase(name),
		ScientificName:       input.ScientificName,
		WateringIntervalDays: interval,
		PreferredLight:       light,
		PotColor:             model.DefaultPotColor,
	}
	if err := r.db.Create(sp).Error; err != nil {
		return nil, err
	}
	return sp, nil
}

// create persists sp; when a concurrent request won the race on the Perenual
// id unique index, the winner is read back and reused.
func (r *Resolver) create(sp *model.Species, perenualID int) (*model.Species, error) {
	if err := r.db.Create(sp).Error; err != nil {
		if isUniqueViolation(err) {
			if existing, rerr := r.byPerenualID(perenualID); rerr == nil {
				return existing, nil
			}
			return nil, apperr.Conflictf("species with perenual id %d", perenualID)
		}
		return nil, err
	}
	return sp, nil
}

func (r *Resolver) byPerenualID(id int) (*model.Species, error) {
	var sp model.Species
	if err := r.db.Where("perenual_id = ?", id).First(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

func parseToken(token string) (kind string, id int, err error) {
	var raw string
	switch {
	case strings.HasPrefix(token, "local_"):
		kind, raw = "local", strings.TrimPrefix(token, "local_")
	case strings.HasPrefix(token, "api_"):
		kind, raw = "api", strings.TrimPrefix(token, "api_")
	default:
		return "", 0, apperr.Validationf("malformed selection token %q", token)
	}
	id, convErr := strconv.Atoi(raw)
	if convErr != nil || id <= 0 {
		return "", 0, apperr.Validationf("malformed selection token %q", token)
	}
	return kind, id, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// TitleCase uppercases the first letter of each word and lowercases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
