package integrator

import "github.com/df07/go-progressive-pathtracer/pkg/core"

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// SkyColor is the background gradient keyed on the ray's vertical direction:
// white when looking straight up, sky blue when looking straight down.
func SkyColor(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Unit().Y + 1.0)
	return skyWhite.Lerp(skyBlue, t)
}
