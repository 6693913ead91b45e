package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lemiae/PlantShelf/catalog"
	"github.com/lemiae/PlantShelf/config"
	"github.com/lemiae/PlantShelf/model"
	"github.com/lemiae/PlantShelf/perenual"
)

// Event is pushed to websocket subscribers whenever a plant changes state.
type Event struct {
	Action      string    `json:"action"` // added, watered, moved, removed
	PlantID     uint64    `json:"plantId"`
	DisplayName string    `json:"displayName"`
	RoomID      uint64    `json:"roomId"`
	At          time.Time `json:"at"`
}

type Controller interface {
	DB() *gorm.DB
	Resolver() *catalog.Resolver
	Remote() *perenual.Client
	Clock() Clock
	EventChannel(ctx context.Context) chan *Event
	Publish(ev *Event)
}

type controller struct {
	db       *gorm.DB
	remote   *perenual.Client
	resolver *catalog.Resolver
	clock    Clock

	mutex         sync.RWMutex
	eventChannels map[string]chan *Event
}

// NewController opens the sqlite database, migrates the schema and wires the
// remote catalog client with its memoization cache.
func NewController(cfg *config.Config) (Controller, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	r := db.Exec("PRAGMA foreign_keys = ON", nil)
	if r.Error != nil {
		return nil, r.Error
	}

	remote := perenual.NewClient(cfg.Perenual.BaseURL, cfg.Perenual.APIKey,
		cfg.Perenual.Timeout(), perenual.NewMemoryCache())

	c, err := newController(db, remote, RealClock{})
	if err != nil {
		return nil, err
	}

	// First run: seed a demo account so the API is usable immediately.
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count == 0 {
		demo := model.User{Username: "demo", Token: uuid.NewString()}
		db.Create(&demo)
		log.Println("created demo user, token:", demo.Token)
	}

	return c, nil
}

// NewControllerWith wires a controller around preconstructed dependencies.
// Tests use it with an in-memory database, a fake remote and a stub clock.
func NewControllerWith(db *gorm.DB, remote *perenual.Client, clock Clock) (Controller, error) {
	return newController(db, remote, clock)
}

func newController(db *gorm.DB, remote *perenual.Client, clock Clock) (*controller, error) {
	for _, m := range []interface{}{&model.User{}, &model.Species{}, &model.Room{}, &model.Plant{}} {
		if err := db.AutoMigrate(m); err != nil {
			return nil, err
		}
	}

	return &controller{
		db:            db,
		remote:        remote,
		resolver:      catalog.NewResolver(db, remote),
		clock:         clock,
		eventChannels: make(map[string]chan *Event),
	}, nil
}

func (c *controller) DB() *gorm.DB                { return c.db }
func (c *controller) Resolver() *catalog.Resolver { return c.resolver }
func (c *controller) Remote() *perenual.Client    { return c.remote }
func (c *controller) Clock() Clock                { return c.clock }

// EventChannel registers a subscriber channel, removed again when ctx ends.
func (c *controller) EventChannel(ctx context.Context) chan *Event {
	ch := make(chan *Event, 8)
	key := uuid.NewString()

	c.mutex.Lock()
	c.eventChannels[key] = ch
	c.mutex.Unlock()

	go func() {
		<-ctx.Done()
		c.mutex.Lock()
		delete(c.eventChannels, key)
		c.mutex.Unlock()

		log.Println("ws client closed", key)
	}()

	return ch
}

// Publish fans an event out to all subscribers. Slow consumers are skipped
// rather than blocking the request that triggered the event.
func (c *controller) Publish(ev *Event) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	for _, out := range c.eventChannels {
		select {
		case out <- ev:
		default:
		}
	}
}
