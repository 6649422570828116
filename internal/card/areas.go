package card

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultAreaColor is used for any area name the registry does not know.
const DefaultAreaColor = "#dc2626"

// StorageKey under which the custom area mapping is persisted, as a single
// serialized JSON object.
const StorageKey = "customAreas"

// AreaColor is one entry of the merged registry, in presentation order.
type AreaColor struct {
	Nombre string `json:"nombre"`
	Color  string `json:"color"`
}

// builtinAreas is the institutional palette. Order matters: it is the order
// the area selector presents.
var builtinAreas = []AreaColor{
	{"VOLUNTARIADO", "#d60000"},
	{"ADMINISTRACIÓN", "#b1b1b1"},
	{"COMUNICACIÓN", "#b1b1b1"},
	{"INSTITUTO UNIVERSITARIO", "#0f843e"},
	{"NATACIÓN", "#0f843e"},
	{"CAPACITACIÓN", "#0f843e"},
	{"SOCORROS", "#f79021"},
	{"DAMAS", "#004aad"},
	{"VETERANOS", "#004aad"},
	{"JUVENTUD", "#004aad"},
	{"SERVICIOS MÉDICOS", "#319dd1"},
	{"PREVENCIÓN", "#fac30b"},
	{"APOYO PSICOSOCIAL", "#7e4b96"},
	{"MIGRACIÓN", "#5c183b"},
}

// Store is the client-local persistence capability injected into the registry.
// Implementations may be a real file, a browser-storage bridge, or an
// in-memory map for tests.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// MemStore is the trivial in-memory Store.
type MemStore map[string]string

func (m MemStore) Get(key string) (string, bool) { v, ok := m[key]; return v, ok }
func (m MemStore) Set(key, value string) error   { m[key] = value; return nil }
func (m MemStore) Remove(key string) error       { delete(m, key); return nil }

// Registry resolves area names to display colors, merging the built-in
// palette with user-defined custom areas loaded from the injected store.
type Registry struct {
	store       Store
	custom      map[string]string
	customOrder []string
}

// NewRegistry builds a registry and loads any previously persisted custom
// areas. A corrupt or missing stored mapping degrades to no custom areas.
func NewRegistry(store Store) *Registry {
	r := &Registry{store: store, custom: make(map[string]string)}
	if raw, ok := store.Get(StorageKey); ok {
		var saved map[string]string
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			log.Warn().Err(err).Msg("areas: stored custom areas are corrupt, ignoring")
		} else {
			for name, color := range saved {
				r.custom[name] = color
				r.customOrder = append(r.customOrder, name)
			}
			// El objeto persistido no conserva el orden de alta; se
			// ordena para que el merge sea estable entre recargas.
			sort.Strings(r.customOrder)
		}
	}
	return r
}

// Lookup returns the color for an area, falling back to DefaultAreaColor for
// unknown names. It never fails.
func (r *Registry) Lookup(area string) string {
	for _, a := range builtinAreas {
		if a.Nombre == area {
			return a.Color
		}
	}
	if color, ok := r.custom[area]; ok {
		return color
	}
	return DefaultAreaColor
}

// Exists reports whether a name is already taken in the merged set.
func (r *Registry) Exists(area string) bool {
	for _, a := range builtinAreas {
		if a.Nombre == area {
			return true
		}
	}
	_, ok := r.custom[area]
	return ok
}

// Add registers a custom area. The name is uppercase-trimmed before checking
// for collisions; a collision (built-in or custom) is a no-op and returns
// false. The whole custom set is persisted on success — a storage failure is
// logged and swallowed because the in-memory registry stays usable.
func (r *Registry) Add(name, color string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" || r.Exists(normalized) {
		return false
	}

	r.custom[normalized] = color
	r.customOrder = append(r.customOrder, normalized)

	data, err := json.Marshal(r.custom)
	if err == nil {
		err = r.store.Set(StorageKey, string(data))
	}
	if err != nil {
		log.Warn().Err(err).Str("area", normalized).Msg("areas: could not persist custom areas")
	}
	return true
}

// Merged returns the selector contents: built-ins first, then custom areas in
// insertion order.
func (r *Registry) Merged() []AreaColor {
	out := make([]AreaColor, 0, len(builtinAreas)+len(r.customOrder))
	out = append(out, builtinAreas...)
	for _, name := range r.customOrder {
		out = append(out, AreaColor{Nombre: name, Color: r.custom[name]})
	}
	return out
}
