package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lemiae/PlantShelf/apperr"
	"github.com/lemiae/PlantShelf/catalog"
	"github.com/lemiae/PlantShelf/model"
	"github.com/lemiae/PlantShelf/shelf"
)

// plantView is the read-side shape of a plant: stored fields plus the values
// derived on every read.
type plantView struct {
	ID                uint64        `json:"id"`
	DisplayName       string        `json:"displayName"`
	Species           model.Species `json:"species"`
	RoomID            uint64        `json:"roomId"`
	Shelf             int           `json:"shelf"`
	Position          int           `json:"position"`
	LastWateredAt     time.Time     `json:"lastWateredAt"`
	DaysSinceWatering int           `json:"daysSinceWatering"`
	NeedsWatering     bool          `json:"needsWatering"`
	Notes             string        `json:"notes"`
}

func (s *Server) viewOf(p *model.Plant) plantView {
	now := s.ctrl.Clock().Now()
	return plantView{
		ID:                p.ID,
		DisplayName:       p.DisplayName(),
		Species:           p.Species,
		RoomID:            p.RoomID,
		Shelf:             p.Shelf,
		Position:          p.Position,
		LastWateredAt:     p.LastWateredAt,
		DaysSinceWatering: shelf.DaysSince(p.LastWateredAt, now),
		NeedsWatering:     shelf.NeedsWatering(p.LastWateredAt, p.Species.WateringIntervalDays, now),
		Notes:             p.Notes,
	}
}

// Dashboard summarizes the caller's collection: counts plus the five most
// overdue plants.
func (s *Server) Dashboard(c *gin.Context) {
	user := currentUser(c)
	db := s.ctrl.DB()

	var roomCount int64
	db.Model(&model.Room{}).Where("user_id = ?", user.ID).Count(&roomCount)

	var plants []model.Plant
	db.Preload("Species").Where("user_id = ?", user.ID).Find(&plants)

	now := s.ctrl.Clock().Now()
	urgent := make([]plantView, 0)
	for i := range plants {
		if shelf.NeedsWatering(plants[i].LastWateredAt, plants[i].Species.WateringIntervalDays, now) {
			urgent = append(urgent, s.viewOf(&plants[i]))
		}
	}
	sort.Slice(urgent, func(i, j int) bool {
		overdueI := urgent[i].DaysSinceWatering - urgent[i].Species.WateringIntervalDays
		overdueJ := urgent[j].DaysSinceWatering - urgent[j].Species.WateringIntervalDays
		return overdueI > overdueJ
	})

	needsWatering := len(urgent)
	if len(urgent) > 5 {
		urgent = urgent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"roomCount":     roomCount,
		"plantCount":    len(plants),
		"needsWatering": needsWatering,
		"urgent":        urgent,
	})
}

// SearchPlants aggregates local catalog matches with remote candidates. An
// optional limit parameter tightens the result cap.
func (s *Server) SearchPlants(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	results := s.ctrl.Resolver().Search(c.Request.Context(), c.Query("q"), limit)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ListRooms returns the caller's rooms with per-room watering stats.
func (s *Server) ListRooms(c *gin.Context) {
	user := currentUser(c)
	db := s.ctrl.DB()

	var rooms []model.Room
	db.Where("user_id = ?", user.ID).Order("name").Find(&rooms)

	now := s.ctrl.Clock().Now()
	out := make([]gin.H, 0, len(rooms))
	for _, room := range rooms {
		var plants []model.Plant
		db.Preload("Species").Where("room_id = ?", room.ID).Find(&plants)

		needsWatering := 0
		for i := range plants {
			if shelf.NeedsWatering(plants[i].LastWateredAt, plants[i].Species.WateringIntervalDays, now) {
				needsWatering++
			}
		}
		out = append(out, gin.H{
			"room":          room,
			"plantCount":    len(plants),
			"needsWatering": needsWatering,
		})
	}

	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

func (s *Server) CreateRoom(c *gin.Context) {
	user := currentUser(c)

	input, err := bindRoomInput(c)
	if err != nil {
		errorJSON(c, err)
		return
	}

	room := model.Room{
		UserID:      user.ID,
		Name:        input.Name,
		Exposure:    input.Exposure,
		Description: input.Description,
		ShelfCount:  input.ShelfCount,
	}
	if err := s.ctrl.DB().Create(&room).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			errorJSON(c, apperr.Conflictf("room %q already exists", room.Name))
			return
		}
		errorJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (s *Server) UpdateRoom(c *gin.Context) {
	user := currentUser(c)

	room, err := s.loadRoom(c, user)
	if err != nil {
		errorJSON(c, err)
		return
	}

	input, err := bindRoomInput(c)
	if err != nil {
		errorJSON(c, err)
		return
	}

	room.Name = input.Name
	room.Exposure = input.Exposure
	room.Description = input.Description
	room.ShelfCount = input.ShelfCount
	if err := s.ctrl.DB().Save(room).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			errorJSON(c, apperr.Conflictf("room %q already exists", room.Name))
			return
		}
		errorJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room and every plant placed in it.
func (s *Server) DeleteRoom(c *gin.Context) {
	user := currentUser(c)

	room, err := s.loadRoom(c, user)
	if err != nil {
		errorJSON(c, err)
		return
	}

	db := s.ctrl.DB()
	if err := db.Where("room_id = ?", room.ID).Delete(&model.Plant{}).Error; err != nil {
		errorJSON(c, err)
		return
	}
	if err := db.Delete(room).Error; err != nil {
		errorJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": room.ID})
}

// RoomShelves renders the bibliothèque view: plants grouped per shelf,
// ordered by position, annotated with watering status.
func (s *Server) RoomShelves(c *gin.Context) {
	user := currentUser(c)

	room, err := s.loadRoom(c, user)
	if err != nil {
		errorJSON(c, err)
		return
	}

	var plants []model.Plant
	s.ctrl.DB().Preload("Species").
		Where("room_id = ?", room.ID).
		Order("shelf, position").
		Find(&plants)

	byShelf := make(map[int][]plantView, room.ShelfCount)
	needsWatering := 0
	for i := range plants {
		v := s.viewOf(&plants[i])
		if v.NeedsWatering {
			needsWatering++
		}
		byShelf[plants[i].Shelf] = append(byShelf[plants[i].Shelf], v)
	}

	shelves := make([]gin.H, 0, room.ShelfCount)
	for n := 1; n <= room.ShelfCount; n++ {
		row := byShelf[n]
		if row == nil {
			row = []plantView{}
		}
		shelves = append(shelves, gin.H{"shelf": n, "plants": row})
	}

	c.JSON(http.StatusOK, gin.H{
		"room":          room,
		"shelves":       shelves,
		"plantCount":    len(plants),
		"needsWatering": needsWatering,
	})
}

// AddPlant is the resolve-and-place flow: resolve the species selection,
// validate the placement, then persist species before instance so a plant
// never references an unpersisted species.
func (s *Server) AddPlant(c *gin.Context) {
	user := currentUser(c)

	var input model.AddPlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorJSON(c, apperr.Validationf("invalid payload"))
		return
	}

	room, err := s.roomByID(user, input.RoomID)
	if err != nil {
		errorJSON(c, err)
		return
	}

	if err := shelf.ValidateCreate(room, input.Shelf, input.Position); err != nil {
		errorJSON(c, err)
		return
	}

	species, err := s.ctrl.Resolver().Resolve(c.Request.Context(), catalog.Selection{
		Token: input.Token,
		Query: input.Query,
	})
	if err != nil {
		errorJSON(c, err)
		return
	}

	now := s.ctrl.Clock().Now()
	plant := model.Plant{
		UserID:        user.ID,
		SpeciesID:     species.ID,
		Species:       *species,
		RoomID:        room.ID,
		CustomName:    input.CustomName,
		Shelf:         input.Shelf,
		Position:      input.Position,
		LastWateredAt: now,
		Notes:         input.Notes,
	}
	if err := s.ctrl.DB().Create(&plant).Error; err != nil {
		errorJSON(c, err)
		return
	}

	s.ctrl.Publish(&Event{
		Action:      "added",
		PlantID:     plant.ID,
		DisplayName: plant.DisplayName(),
		RoomID:      room.ID,
		At:          now,
	})

	c.JSON(http.StatusCreated, s.viewOf(&plant))
}

// WaterPlant resets the watering timer to now.
func (s *Server) WaterPlant(c *gin.Context) {
	user := currentUser(c)

	plant, err := s.loadPlant(c, user)
	if err != nil {
		errorJSON(c, err)
		return
	}

	now := s.ctrl.Clock().Now()
	plant.LastWateredAt = now
	if err := s.ctrl.DB().Save(plant).Error; err != nil {
		errorJSON(c, err)
		return
	}

	s.ctrl.Publish(&Event{
		Action:      "watered",
		PlantID:     plant.ID,
		DisplayName: plant.DisplayName(),
		RoomID:      plant.RoomID,
		At:          now,
	})

	c.JSON(http.StatusOK, gin.H{
		"id":                plant.ID,
		"lastWateredAt":     plant.LastWateredAt,
		"daysSinceWatering": shelf.DaysSince(plant.LastWateredAt, now),
	})
}

// MovePlant changes a plant's shelf coordinates. An out-of-range shelf is
// rejected like on the create path; a negative position is clamped to 0.
func (s *Server) MovePlant(c *gin.Context) {
	user := currentUser(c)

	plant, err := s.loadPlant(c, user)
	if err != nil {
		errorJSON(c, err)
		return
	}

	var input model.MovePlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorJSON(c, apperr.Validationf("invalid payload"))
		return
	}

	room, err := s.roomByID(user, plant.RoomID)
	if err != nil {
		errorJSON(c, err)
		return
	}

	if err := shelf.ValidateShelf(room, input.Shelf); err != nil {
		errorJSON(c, err)
		return
	}

	plant.Shelf = input.Shelf
	plant.Position = shelf.ClampPosition(input.Position)
	if err := s.ctrl.DB().Save(plant).Error; err != nil {
		errorJSON(c, err)
		return
	}

	s.ctrl.Publish(&Event{
		Action:      "moved",
		PlantID:     plant.ID,
		DisplayName: plant.DisplayName(),
		RoomID:      plant.RoomID,
		At:          s.ctrl.Clock().Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"id":       plant.ID,
		"shelf":    plant.Shelf,
		"position": plant.Position,
	})
}

func (s *Server) DeletePlant(c *gin.Context) {
	user := currentUser(c)

	plant, err := s.loadPlant(c, user)
	if err != nil {
		errorJSON(c, err)
		return
	}

	if err := s.ctrl.DB().Delete(plant).Error; err != nil {
		errorJSON(c, err)
		return
	}

	s.ctrl.Publish(&Event{
		Action:      "removed",
		PlantID:     plant.ID,
		DisplayName: plant.DisplayName(),
		RoomID:      plant.RoomID,
		At:          s.ctrl.Clock().Now(),
	})

	c.JSON(http.StatusOK, gin.H{"deleted": plant.ID})
}

// CreateSpecies is manual catalog authoring, for plants Perenual never heard of.
func (s *Server) CreateSpecies(c *gin.Context) {
	var input model.SpeciesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorJSON(c, apperr.Validationf("invalid payload"))
		return
	}

	species, err := s.ctrl.Resolver().CreateManual(input)
	if err != nil {
		errorJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, species)
}

// SpeciesCare proxies the Perenual care guides for a catalog entry. Entries
// without an external id have no care data.
func (s *Server) SpeciesCare(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		errorJSON(c, err)
		return
	}

	var species model.Species
	if err := s.ctrl.DB().First(&species, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorJSON(c, apperr.NotFoundf("species %d", id))
			return
		}
		errorJSON(c, err)
		return
	}

	guides := []gin.H{}
	if species.PerenualID != nil {
		for _, g := range s.ctrl.Remote().CareGuides(c.Request.Context(), *species.PerenualID) {
			for _, section := range g.Section {
				guides = append(guides, gin.H{
					"type":        section.Type,
					"description": section.Description,
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"species": species,
		"guides":  guides,
	})
}

func bindRoomInput(c *gin.Context) (*model.RoomInput, error) {
	var input model.RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return nil, apperr.Validationf("invalid payload")
	}

	input.Name = catalog.TitleCase(strings.TrimSpace(input.Name))
	if len([]rune(input.Name)) < 2 {
		return nil, apperr.Validationf("room name must be at least 2 characters")
	}
	if !model.ValidExposure(input.Exposure) {
		return nil, apperr.Validationf("unknown exposure %q", input.Exposure)
	}
	if input.ShelfCount == 0 {
		input.ShelfCount = 3
	}
	if input.ShelfCount < model.MinShelfCount || input.ShelfCount > model.MaxShelfCount {
		return nil, apperr.Validationf("shelf count %d out of range %d..%d",
			input.ShelfCount, model.MinShelfCount, model.MaxShelfCount)
	}
	return &input, nil
}

func paramID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validationf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

func (s *Server) loadRoom(c *gin.Context, user *model.User) (*model.Room, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}
	return s.roomByID(user, id)
}

// roomByID scopes the lookup to the owner; other owners' rooms answer the
// same NotFound as absent ones.
func (s *Server) roomByID(user *model.User, id uint64) (*model.Room, error) {
	var room model.Room
	err := s.ctrl.DB().Where("id = ? AND user_id = ?", id, user.ID).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("room %d", id)
		}
		return nil, err
	}
	return &room, nil
}

func (s *Server) loadPlant(c *gin.Context, user *model.User) (*model.Plant, error) {
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}

	var plant model.Plant
	err = s.ctrl.DB().Preload("Species").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&plant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("plant %d", id)
		}
		return nil, err
	}
	return &plant, nil
}
