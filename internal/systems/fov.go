package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/domain"
	"roguely-server/pkg/grid"
	"roguely-server/pkg/logger"
)

// Количество лучей: по одному на градус.
const fovRays = 360

// FOVOptions - параметры расчета поля зрения.
type FOVOptions struct {
	// MaxDistance ограничивает длину луча в шагах. 0 - без ограничения.
	MaxDistance int
}

// ComputeFieldOfView пускает 360 лучей из origin с шагом (cos, sin).
// Каждая пройденная клетка помечается видимой; стена помечается и обрывает луч,
// выход за карту тоже обрывает луч. Клетка наблюдателя видна всегда.
//
// Фиксированное число лучей недосчитывает клетки на большой дальности.
// Каждый вызов строит карту заново, память об увиденном не хранится.
func ComputeFieldOfView(m *domain.Map, origin domain.Point, opts FOVOptions) *grid.Matrix[int] {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"map":          m.Name,
		"observer_pos": origin,
	})

	light := grid.New(m.Height, m.Width, domain.LightUnseen)
	if !m.InBounds(origin.X, origin.Y) {
		fovLogger.Warn("FOV calculation skipped: observer is outside the map.")
		return light
	}

	light.Set(origin.Y, origin.X, domain.LightVisible)
	cells := m.Cells()
	w, h := float64(m.Width), float64(m.Height)

	for angle := 0; angle < fovRays; angle++ {
		rad := float64(angle) * math.Pi / 180
		dx, dy := math.Cos(rad), math.Sin(rad)

		x := float64(origin.X) + dx
		y := float64(origin.Y) + dy
		for steps := 1; x >= 0 && x < w && y >= 0 && y < h; steps++ {
			col, row := int(x), int(y)
			light.Set(row, col, domain.LightVisible)

			if cells.At(row, col) == domain.CellWall {
				break
			}
			if opts.MaxDistance > 0 && steps >= opts.MaxDistance {
				break
			}
			x += dx
			y += dy
		}
	}

	fovLogger.WithField("visible_tiles", light.Count(func(v int) bool { return v != domain.LightUnseen })).
		Debug("FOV calculation complete.")

	return light
}

// UpdateFieldOfView пересчитывает и сохраняет карту освещенности.
func UpdateFieldOfView(m *domain.Map, origin domain.Point, opts FOVOptions) {
	// Размеры совпадают по построению, ошибки здесь быть не может.
	_ = m.SetLight(ComputeFieldOfView(m, origin, opts))
}
