package systems

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/domain"
	"roguely-server/pkg/logger"
)

var ErrNoInventory = errors.New("entity has no inventory")

// PickupResult - что подобрано и сколько очков начислено.
type PickupResult struct {
	Item   string
	Count  int
	Points int
}

// TryPickup кладет предмет в инвентарь actor (+1 к счетчику), прибавляет его ценность
// к счету и удаляет предмет из группы реестра.
func TryPickup(reg *domain.Registry, actor *domain.Entity, item domain.Overlap) (PickupResult, error) {
	inv, ok := domain.FirstComponent[*domain.InventoryComponent](actor)
	if !ok {
		return PickupResult{}, fmt.Errorf("%w: %s", ErrNoInventory, actor.FullName())
	}

	name := item.Entity.Name()
	count := inv.Count(name) + 1
	inv.Upsert(name, count)

	points := 0
	if v, ok := domain.FirstComponent[*domain.ValueComponent](item.Entity); ok {
		points = v.Value
	}
	if score, ok := domain.FirstComponent[*domain.ScoreComponent](actor); ok {
		score.Score += points
	}

	reg.RemoveEntity(item.Group, item.Entity.ID)

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor":     actor.FullName(),
		"item":      item.FullName,
		"count":     count,
		"points":    points,
	}).Info("Item picked up.")

	return PickupResult{Item: name, Count: count, Points: points}, nil
}
