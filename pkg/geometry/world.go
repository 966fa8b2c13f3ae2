package geometry

import "github.com/df07/go-progressive-pathtracer/pkg/core"

// World is an ordered collection of hittables treated as one.
// It is read-only once rendering starts.
type World struct {
	Objects []Hittable
}

// NewWorld creates a world from the given objects
func NewWorld(objects ...Hittable) *World {
	return &World{Objects: objects}
}

// Add appends an object to the world
func (w *World) Add(objects ...Hittable) {
	w.Objects = append(w.Objects, objects...)
}

// Len returns the number of objects in the world
func (w *World) Len() int {
	return len(w.Objects)
}

// Hit returns the nearest hit among all objects. On equal t the first object wins.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	var closest Hit
	hitAnything := false

	for _, object := range w.Objects {
		hit, ok := object.Hit(ray, tMin, tMax)
		if !ok {
			continue
		}
		if !hitAnything || hit.T < closest.T {
			closest = hit
			hitAnything = true
		}
	}

	return closest, hitAnything
}
