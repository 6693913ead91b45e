package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/lemiae/PlantShelf/perenual"
)

// FakePerenual is an httptest stand-in for the Perenual API. Configure its
// fixture fields, point a client at URL(), and assert on the call counters.
type FakePerenual struct {
	mu sync.Mutex

	SearchResults []perenual.PlantData
	DetailsByID   map[int]perenual.PlantData
	CareByID      map[int][]perenual.CareGuide

	FailSearch  bool
	FailDetails bool

	SearchCalls int
	DetailCalls int
	CareCalls   int

	srv *httptest.Server
}

func NewFakePerenual() *FakePerenual {
	f := &FakePerenual{
		DetailsByID: make(map[int]perenual.PlantData),
		CareByID:    make(map[int][]perenual.CareGuide),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakePerenual) URL() string { return f.srv.URL }

func (f *FakePerenual) Close() { f.srv.Close() }

func (f *FakePerenual) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/species-list":
		f.SearchCalls++
		if f.FailSearch {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{"data": f.SearchResults})

	case strings.HasPrefix(r.URL.Path, "/species/details/"):
		f.DetailCalls++
		if f.FailDetails {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/species/details/"))
		d, ok := f.DetailsByID[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, d)

	case r.URL.Path == "/species-care-guide-list":
		f.CareCalls++
		id, _ := strconv.Atoi(r.URL.Query().Get("species_id"))
		writeJSON(w, map[string]interface{}{"data": f.CareByID[id]})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
