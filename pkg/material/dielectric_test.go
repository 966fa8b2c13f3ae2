package material

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func TestDielectric_IndexOneIsStraightThrough(t *testing.T) {
	air := NewDielectric(1.0)
	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"entering head-on", core.NewVec3(0, -1, 0)},
		{"entering at 45 degrees", core.NewVec3(1, -1, 0)},
		{"entering oblique", core.NewVec3(0.2, -3, 0.4)},
		{"exiting at 45 degrees", core.NewVec3(1, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A draw close to 1 always loses against Schlick, so the ray refracts
			sampler := core.NewSequenceSampler(0.999)
			rayIn := core.NewRay(tt.direction.Negate(), tt.direction)

			interaction := air.Interact(rayIn, hitNormal, sampler)
			if len(interaction.ScatteredRays) != 1 {
				t.Fatalf("Dielectric should scatter exactly one ray, got %d", len(interaction.ScatteredRays))
			}
			got := interaction.ScatteredRays[0].Ray.Direction.Unit()
			if !got.ApproxEquals(tt.direction.Unit(), 1e-9) {
				t.Errorf("Expected unbent direction %v, got %v", tt.direction.Unit(), got)
			}
		})
	}
}

func TestDielectric_ColorlessAndNonEmitting(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(42)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	for i := 0; i < 50; i++ {
		interaction := glass.Interact(rayIn, hitNormal, sampler)
		if len(interaction.ScatteredRays) != 1 {
			t.Fatalf("Dielectric should always scatter exactly one ray")
		}
		if !interaction.ScatteredRays[0].Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Errorf("Expected colorless attenuation, got %v", interaction.ScatteredRays[0].Attenuation)
		}
		if !interaction.DirectlyEmitted.Equals(core.Vec3{}) {
			t.Errorf("Dielectric should not emit, got %v", interaction.DirectlyEmitted)
		}
	}
}

func TestDielectric_SchlickChoice(t *testing.T) {
	glass := NewDielectric(1.5)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	t.Run("low draw reflects", func(t *testing.T) {
		interaction := glass.Interact(rayIn, hitNormal, core.NewSequenceSampler(0.0))
		got := interaction.ScatteredRays[0].Ray.Direction
		if !got.ApproxEquals(core.NewVec3(1, 1, 0), 1e-12) {
			t.Errorf("Expected mirror reflection (1,1,0), got %v", got)
		}
	})

	t.Run("high draw refracts", func(t *testing.T) {
		interaction := glass.Interact(rayIn, hitNormal, core.NewSequenceSampler(0.999))
		got := interaction.ScatteredRays[0].Ray.Direction.Unit()
		if got.Y >= 0 {
			t.Fatalf("Refracted ray should continue into the surface, got %v", got)
		}
		// Snell: sin(out) = sin(45°)/1.5
		expectedSin := math.Sin(math.Pi/4) / 1.5
		if math.Abs(got.X-expectedSin) > 1e-9 {
			t.Errorf("Expected sin of refracted angle %f, got %f", expectedSin, got.X)
		}
	})
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	// Leaving the glass at a grazing angle: sin(θ)*1.5 > 1
	direction := core.NewVec3(1, 0.2, 0)
	rayIn := core.NewRay(core.NewVec3(-1, -0.2, 0), direction)
	hitNormal := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	for _, draw := range []float64{0.0, 0.5, 0.999} {
		interaction := glass.Interact(rayIn, hitNormal, core.NewSequenceSampler(draw))
		got := interaction.ScatteredRays[0].Ray.Direction
		if !got.ApproxEquals(core.NewVec3(1, -0.2, 0), 1e-12) {
			t.Errorf("Draw %f: expected total internal reflection (1,-0.2,0), got %v", draw, got)
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		index    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.5, 0.04},
		{"grazing incidence glass", 0.0, 1.5, 1.0},
		{"normal incidence air", 1.0, 1.0, 0.0},
		{"grazing incidence air", 0.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.index)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected reflectance %f, got %f", tt.expected, got)
			}
		})
	}
}
