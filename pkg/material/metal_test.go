package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"45 degrees", core.NewVec3(1, -1, 0), core.NewVec3(1, 1, 0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)},
		{"oblique", core.NewVec3(0.3, -2, -0.7), core.NewVec3(0.3, 2, -0.7)},
	}

	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 5, 0), tt.direction)
			interaction := metal.Interact(rayIn, hitNormal, sampler)

			if len(interaction.ScatteredRays) != 1 {
				t.Fatalf("Metal should reflect, got %d rays", len(interaction.ScatteredRays))
			}
			scattered := interaction.ScatteredRays[0]
			if !scattered.Ray.Direction.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Perfect reflection failed: expected %v, got %v", tt.expected, scattered.Ray.Direction)
			}
			if !scattered.Attenuation.Equals(albedo) {
				t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scattered.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	var directions []core.Vec3
	for i := 0; i < 10; i++ {
		interaction := metal.Interact(rayIn, hitNormal, sampler)
		if interaction.Absorbed() {
			t.Fatalf("Head-on fuzz 0.5 reflection cannot go below the surface (iteration %d)", i)
		}
		directions = append(directions, interaction.ScatteredRays[0].Ray.Direction)
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if !directions[i].ApproxEquals(directions[0], 1e-10) {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_Absorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(123)))

	// Grazing angle so that the fuzz regularly pushes the reflection below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		interaction := metal.Interact(rayIn, hitNormal, sampler)
		if interaction.Absorbed() {
			absorbed++
			continue
		}
		scattered++
		if interaction.ScatteredRays[0].Ray.Direction.Dot(hitNormal.Direction) <= 0 {
			t.Fatal("Surviving reflection must leave the surface")
		}
	}

	if absorbed == 0 {
		t.Error("Expected some rays to be absorbed with high fuzz at grazing angle")
	}
	if scattered == 0 {
		t.Error("Expected some rays to be scattered")
	}
}
