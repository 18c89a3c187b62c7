package server

import (
	"encoding/json"
	"net/http"

	"roguely-server/internal/domain"
	"roguely-server/internal/engine"
	"roguely-server/pkg/api"
)

// DebugHandler отдает внутреннее состояние движка. Все чтения идут через Inspect.
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/maps", enableCORS(h.handleMaps))
	mux.HandleFunc("/debug/entities", enableCORS(h.handleEntities))
	mux.HandleFunc("/debug/viewport", enableCORS(h.handleViewport))
}

type mapSummary struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Floor   int    `json:"floor_cells"`
	Visible int    `json:"visible_cells"`
	Current bool   `json:"current"`
}

// /debug/maps - список карт и доля пола/освещенных клеток.
func (h *DebugHandler) handleMaps(w http.ResponseWriter, _ *http.Request) {
	out := []mapSummary{}
	h.Service.Inspect(func(s *engine.Service) {
		current := s.CurrentMap()
		for _, name := range s.MapNames() {
			m, _ := s.Map(name)
			out = append(out, mapSummary{
				Name:    m.Name,
				ID:      m.ID.String(),
				Width:   m.Width,
				Height:  m.Height,
				Floor:   m.Cells().Count(func(v int) bool { return v != domain.CellWall }),
				Visible: m.Light().Count(func(v int) bool { return v == domain.LightVisible }),
				Current: m == current,
			})
		}
	})
	writeJSON(w, out)
}

// /debug/entities?group=mobs - сущности реестра, опционально одной группы.
func (h *DebugHandler) handleEntities(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")

	var out []api.EntityView
	found := true
	h.Service.Inspect(func(s *engine.Service) {
		if group != "" {
			if _, ok := s.Registry().Group(group); !ok {
				found = false
				return
			}
		}
		out = s.EntityViews(group)
	})
	if !found {
		http.Error(w, "group not found", http.StatusNotFound)
		return
	}
	writeJSON(w, out)
}

type viewportDump struct {
	Dimension domain.Dimension       `json:"dimension"`
	Entities  []domain.ViewportEntry `json:"entities"`
}

// /debug/viewport - текущее окно и сущности внутри него.
func (h *DebugHandler) handleViewport(w http.ResponseWriter, _ *http.Request) {
	var out viewportDump
	h.Service.Inspect(func(s *engine.Service) {
		out.Dimension = s.Viewport()
		out.Entities = s.Registry().EntitiesInViewport(s.IsWithinViewport)
	})
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
