// Package dashboard mantiene en memoria las listas de los dashboards de
// admin, moderador y usuario, y arma las vistas filtradas.
//
// Collection es la lista de referencia. Los filtros no la tocan: devuelven un
// slice nuevo en el orden de inserción. Los boards combinan una colección con
// un backend opcional y deshacen el cambio local si el backend lo rechaza.
package dashboard

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Entity es lo que un Collection necesita de sus elementos.
type Entity[T any] interface {
	Key() string
	WithKey(id string) T
}

type Collection[T Entity[T]] struct {
	mu    sync.RWMutex
	items []T
	newID func() string
}

func NewCollection[T Entity[T]](items []T) *Collection[T] {
	c := &Collection[T]{newID: uuid.NewString}
	c.Replace(items)
	return c
}

// Items devuelve una copia en orden de inserción (el más nuevo primero).
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Add antepone item. Si no trae id, o el id ya existe, se le asigna uno
// nuevo. Devuelve el item tal como quedó guardado.
func (c *Collection[T]) Add(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.Key() == "" || c.indexLocked(item.Key()) >= 0 {
		item = item.WithKey(c.freshIDLocked())
	}
	c.items = slices.Insert(c.items, 0, item)
	return item
}

// Update reemplaza el elemento id por mutate(elemento). El id se conserva
// aunque mutate lo cambie.
func (c *Collection[T]) Update(id string, mutate func(T) T) (updated T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return updated, false
	}
	next := mutate(c.items[i])
	if next.Key() != id {
		next = next.WithKey(id)
	}
	c.items[i] = next
	return next, true
}

// Remove saca el elemento id y devuelve su posición (para poder reinsertarlo).
func (c *Collection[T]) Remove(id string) (removed T, at int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return removed, -1, false
	}
	removed = c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	return removed, i, true
}

// InsertAt reinserta en la posición dada (acotada al largo actual). Un id
// repetido no se inserta.
func (c *Collection[T]) InsertAt(at int, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexLocked(item.Key()) >= 0 {
		return false
	}
	at = max(0, min(at, len(c.items)))
	c.items = slices.Insert(c.items, at, item)
	return true
}

// Rekey cambia el id provisorio de un elemento por el definitivo.
func (c *Collection[T]) Rekey(oldID, newID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(oldID)
	if i < 0 || (oldID != newID && c.indexLocked(newID) >= 0) {
		return false
	}
	c.items[i] = c.items[i].WithKey(newID)
	return true
}

// Replace pisa el contenido; ids repetidos se quedan con la primera aparición.
func (c *Collection[T]) Replace(items []T) {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.Key()]; dup {
			continue
		}
		seen[it.Key()] = struct{}{}
		out = append(out, it)
	}
	c.mu.Lock()
	c.items = out
	c.mu.Unlock()
}

// Filter devuelve los elementos que cumplen match, en orden de inserción.
func (c *Collection[T]) Filter(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if match == nil || match(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T]) indexLocked(id string) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.Key() == id })
}

func (c *Collection[T]) freshIDLocked() string {
	for {
		id := c.newID()
		if c.indexLocked(id) < 0 {
			return id
		}
	}
}
