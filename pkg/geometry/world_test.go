package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

func TestWorld_Hit_Nearest(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewLambertian(core.NewVec3(1, 0, 0)))
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, material.NewLambertian(core.NewVec3(0, 0, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name  string
		world *World
	}{
		{"near first", NewWorld(near, far)},
		{"far first", NewWorld(far, near)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.world.Hit(ray, 0.001, math.MaxFloat64)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected nearest t=1.5, got %f", hit.T)
			}
			if hit.Material != near.Material {
				t.Errorf("Expected material of the near sphere, got %+v", hit.Material)
			}
		})
	}
}

func TestWorld_Hit_Empty(t *testing.T) {
	world := NewWorld()
	if _, isHit := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1000); isHit {
		t.Error("Empty world should never report a hit")
	}
}

func TestWorld_Hit_NoneHit(t *testing.T) {
	world := NewWorld(NewSphere(core.NewVec3(5, 5, 5), 1, material.NewNormal()))
	if _, isHit := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1000); isHit {
		t.Error("Expected miss")
	}
}

func TestWorld_Hit_TieKeepsFirst(t *testing.T) {
	first := NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewDielectric(1.5))
	second := NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewNormal())
	world := NewWorld(first, second)

	hit, isHit := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != first.Material {
		t.Errorf("Expected the first object to win a tie, got %+v", hit.Material)
	}
}

func TestWorld_NestedWorld(t *testing.T) {
	inner := NewWorld(NewSphere(core.NewVec3(0, 0, -3), 0.5, material.NewNormal()))
	outer := NewWorld()
	outer.Add(inner, NewSphere(core.NewVec3(0, 0, -10), 1, material.NewNormal()))

	if outer.Len() != 2 {
		t.Fatalf("Expected 2 objects, got %d", outer.Len())
	}
	hit, isHit := outer.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1000)
	if !isHit || math.Abs(hit.T-2.5) > 1e-9 {
		t.Errorf("Expected nested hit at t=2.5, got hit=%t t=%f", isHit, hit.T)
	}
}
