package shelf

import (
	"github.com/lemiae/PlantShelf/apperr"
	"github.com/lemiae/PlantShelf/model"
)

// ValidateShelf checks a shelf index against the room's shelf count. Both the
// create and the move path reject out-of-range indexes.
func ValidateShelf(room *model.Room, shelfIdx int) error {
	if shelfIdx < 1 || shelfIdx > room.ShelfCount {
		return apperr.Validationf("shelf %d out of range 1..%d for room %q", shelfIdx, room.ShelfCount, room.Name)
	}
	return nil
}

// ValidateCreate checks the full placement for a new plant. A negative
// position is rejected here; the move path clamps instead.
func ValidateCreate(room *model.Room, shelfIdx, position int) error {
	if err := ValidateShelf(room, shelfIdx); err != nil {
		return err
	}
	if position < 0 {
		return apperr.Validationf("position must be >= 0, got %d", position)
	}
	return nil
}

// ClampPosition folds a submitted move position into the accepted range.
func ClampPosition(position int) int {
	if position < 0 {
		return 0
	}
	return position
}
