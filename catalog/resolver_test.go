package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lemiae/PlantShelf/apperr"
	"github.com/lemiae/PlantShelf/catalog"
	"github.com/lemiae/PlantShelf/model"
	"github.com/lemiae/PlantShelf/perenual"
	"github.com/lemiae/PlantShelf/testutil"
)

func setup(t *testing.T) (*catalog.Resolver, *gorm.DB, *testutil.FakePerenual) {
	t.Helper()
	db := testutil.NewTestDB(t)
	fake := testutil.NewFakePerenual()
	t.Cleanup(fake.Close)
	client := perenual.NewClient(fake.URL(), "test-key", 5*time.Second, perenual.NewMemoryCache())
	return catalog.NewResolver(db, client), db, fake
}

func TestResolveLocalToken(t *testing.T) {
	t.Parallel()

	t.Run("existing entry is returned", func(t *testing.T) {
		t.Parallel()
		r, db, _ := setup(t)

		sp := model.Species{CommonName: "Ficus", WateringIntervalDays: 7, PreferredLight: "indirecte"}
		db.Create(&sp)

		got, err := r.Resolve(context.Background(), catalog.Selection{Token: "local_1"})
		if err != nil {
			t.Fatalf("Resolve(local_1) error = %v", err)
		}
		if got.ID != sp.ID || got.CommonName != "Ficus" {
			t.Errorf("Resolve(local_1) = %+v", got)
		}
	})

	t.Run("missing entry is NotFound", func(t *testing.T) {
		t.Parallel()
		r, _, _ := setup(t)

		_, err := r.Resolve(context.Background(), catalog.Selection{Token: "local_99"})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("Resolve(local_99) error = %v, want ErrNotFound", err)
		}
	})
}

func TestResolveTokenShapes(t *testing.T) {
	t.Parallel()
	r, _, _ := setup(t)

	for _, token := range []string{"", "banana", "local_", "api_", "local_x", "api_-3", "remote_7"} {
		_, err := r.Resolve(context.Background(), catalog.Selection{Token: token, Query: "ficus"})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Resolve(%q) error = %v, want ErrValidation", token, err)
		}
	}
}

func TestResolveAPIToken(t *testing.T) {
	t.Parallel()

	t.Run("materializes from remote details", func(t *testing.T) {
		t.Parallel()
		r, db, fake := setup(t)
		fake.DetailsByID[42] = perenual.PlantData{
			ID:             42,
			CommonName:     "swiss cheese plant",
			ScientificName: []string{"Monstera deliciosa", "Philodendron pertusum"},
			Sunlight:       []string{"full sun"},
			Watering:       "Minimum",
		}

		got, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42", Query: "monstera"})
		if err != nil {
			t.Fatalf("Resolve(api_42) error = %v", err)
		}
		if got.CommonName != "Swiss Cheese Plant" {
			t.Errorf("CommonName = %q, want title-cased", got.CommonName)
		}
		if got.ScientificName == nil || *got.ScientificName != "Monstera deliciosa" {
			t.Errorf("ScientificName = %v, want first list element", got.ScientificName)
		}
		if got.PerenualID == nil || *got.PerenualID != 42 {
			t.Errorf("PerenualID = %v, want 42", got.PerenualID)
		}
		if got.WateringIntervalDays != 14 {
			t.Errorf("WateringIntervalDays = %d, want 14", got.WateringIntervalDays)
		}
		if got.PreferredLight != "directe" {
			t.Errorf("PreferredLight = %q, want directe", got.PreferredLight)
		}

		var count int64
		db.Model(&model.Species{}).Count(&count)
		if count != 1 {
			t.Errorf("species count = %d, want 1", count)
		}
	})

	t.Run("re-selection reuses the existing entry", func(t *testing.T) {
		t.Parallel()
		r, db, fake := setup(t)
		fake.DetailsByID[42] = perenual.PlantData{ID: 42, CommonName: "monstera"}

		first, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42", Query: "monstera"})
		if err != nil {
			t.Fatalf("first Resolve error = %v", err)
		}
		second, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42", Query: "monstera"})
		if err != nil {
			t.Fatalf("second Resolve error = %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("two resolutions created distinct species %d and %d", first.ID, second.ID)
		}

		var count int64
		db.Model(&model.Species{}).Count(&count)
		if count != 1 {
			t.Errorf("species count = %d, want 1", count)
		}
	})

	t.Run("pre-existing entry wins without a remote call", func(t *testing.T) {
		t.Parallel()
		r, db, fake := setup(t)

		ext := 42
		sp := model.Species{CommonName: "Monstera", PerenualID: &ext, WateringIntervalDays: 7, PreferredLight: "indirecte"}
		db.Create(&sp)

		got, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42"})
		if err != nil {
			t.Fatalf("Resolve error = %v", err)
		}
		if got.ID != sp.ID {
			t.Errorf("got species %d, want existing %d", got.ID, sp.ID)
		}
		if fake.DetailCalls != 0 {
			t.Errorf("remote details called %d times for an already-known id", fake.DetailCalls)
		}
	})

	t.Run("falls back to query name when details fail", func(t *testing.T) {
		t.Parallel()
		r, _, fake := setup(t)
		fake.FailDetails = true

		got, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42", Query: "  ficus lyrata "})
		if err != nil {
			t.Fatalf("Resolve error = %v", err)
		}
		if got.CommonName != "Ficus Lyrata" {
			t.Errorf("fallback CommonName = %q, want Ficus Lyrata", got.CommonName)
		}
		if got.WateringIntervalDays != 7 {
			t.Errorf("fallback interval = %d, want 7", got.WateringIntervalDays)
		}
		if got.PreferredLight != "indirecte" {
			t.Errorf("fallback light = %q, want indirecte", got.PreferredLight)
		}
		if got.PerenualID == nil || *got.PerenualID != 42 {
			t.Errorf("fallback PerenualID = %v, want 42", got.PerenualID)
		}
	})

	t.Run("falls back when details are unusable", func(t *testing.T) {
		t.Parallel()
		r, _, fake := setup(t)
		fake.DetailsByID[42] = perenual.PlantData{ID: 42, CommonName: "   "}

		got, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42", Query: "pothos"})
		if err != nil {
			t.Fatalf("Resolve error = %v", err)
		}
		if got.CommonName != "Pothos" {
			t.Errorf("fallback CommonName = %q, want Pothos", got.CommonName)
		}
	})

	t.Run("no name anywhere fails validation", func(t *testing.T) {
		t.Parallel()
		r, _, fake := setup(t)
		fake.FailDetails = true

		_, err := r.Resolve(context.Background(), catalog.Selection{Token: "api_42", Query: "   "})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("Resolve error = %v, want ErrValidation", err)
		}
	})
}

func TestCreateManual(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		r, _, _ := setup(t)

		got, err := r.CreateManual(model.SpeciesInput{CommonName: "ficus benjamina"})
		if err != nil {
			t.Fatalf("CreateManual error = %v", err)
		}
		if got.CommonName != "Ficus Benjamina" {
			t.Errorf("CommonName = %q", got.CommonName)
		}
		if got.WateringIntervalDays != 7 || got.PreferredLight != "indirecte" {
			t.Errorf("defaults = %d days, %q light", got.WateringIntervalDays, got.PreferredLight)
		}
	})

	t.Run("rejects short name", func(t *testing.T) {
		t.Parallel()
		r, _, _ := setup(t)

		if _, err := r.CreateManual(model.SpeciesInput{CommonName: " x "}); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("rejects out-of-range interval", func(t *testing.T) {
		t.Parallel()
		r, _, _ := setup(t)

		_, err := r.CreateManual(model.SpeciesInput{CommonName: "ficus", WateringIntervalDays: 400})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("rejects unknown light level", func(t *testing.T) {
		t.Parallel()
		r, _, _ := setup(t)

		_, err := r.CreateManual(model.SpeciesInput{CommonName: "ficus", PreferredLight: "sideways"})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})
}

func TestCreateRereadsWinnerOnConflict(t *testing.T) {
	t.Parallel()
	r, db, _ := setup(t)

	pid := 42
	winner := model.Species{CommonName: "Monstera Deliciosa", PerenualID: &pid, WateringIntervalDays: 7, PreferredLight: "indirecte"}
	if err := db.Create(&winner).Error; err != nil {
		t.Fatalf("seed winner: %v", err)
	}

	dup := pid
	loser := &model.Species{CommonName: "Monstera", PerenualID: &dup, WateringIntervalDays: 3, PreferredLight: "directe"}
	got, err := catalog.CreateSpecies(r, loser, pid)
	if err != nil {
		t.Fatalf("create duplicate error = %v", err)
	}
	if got.ID != winner.ID {
		t.Fatalf("got species %d, want winner %d", got.ID, winner.ID)
	}
	if got.CommonName != "Monstera Deliciosa" {
		t.Fatalf("common name = %q, want the winner's", got.CommonName)
	}

	var count int64
	db.Model(&model.Species{}).Count(&count)
	if count != 1 {
		t.Fatalf("species count = %d, want 1", count)
	}
}
