package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
)

// Defaults applied to fields a scene file leaves out
const (
	DefaultWidth    = 400
	DefaultHeight   = 225
	DefaultSamples  = 16
	DefaultMaxDepth = 50
	DefaultVFov     = 90.0
)

// SceneFile is the JSON scene description.
// Vectors are objects with x, y and z keys.
type SceneFile struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
	Samples  int         `json:"samples,omitempty"`
	MaxDepth int         `json:"maxDepth,omitempty"`
	Camera   CameraCfg   `json:"camera"`
	Spheres  []SphereCfg `json:"spheres"`
}

type CameraCfg struct {
	LookFrom      core.Vec3  `json:"lookFrom"`
	LookAt        core.Vec3  `json:"lookAt"`
	Up            *core.Vec3 `json:"up,omitempty"` // defaults to (0,1,0)
	VFov          float64    `json:"vfov,omitempty"`
	Aperture      float64    `json:"aperture,omitempty"`
	FocusDistance float64    `json:"focusDistance,omitempty"` // 0 = distance to lookAt
}

type SphereCfg struct {
	Center   core.Vec3   `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

type MaterialCfg struct {
	Type            string    `json:"type"` // normal, lambertian, metal or dielectric
	Albedo          core.Vec3 `json:"albedo"`
	Fuzz            float64   `json:"fuzz,omitempty"`
	RefractiveIndex float64   `json:"refractiveIndex,omitempty"`
}

// Build validates and constructs the runtime material
func (mc MaterialCfg) Build() (material.Material, error) {
	kind, err := material.ParseKind(strings.ToLower(mc.Type))
	if err != nil {
		return material.Material{}, err
	}

	switch kind {
	case material.KindNormal:
		return material.NewNormal(), nil
	case material.KindLambertian:
		return material.NewLambertian(mc.Albedo), nil
	case material.KindMetal:
		return material.NewMetal(mc.Albedo, mc.Fuzz), nil
	default:
		if mc.RefractiveIndex <= 0 {
			return material.Material{}, fmt.Errorf("dielectric needs a positive refractiveIndex, got %g", mc.RefractiveIndex)
		}
		return material.NewDielectric(mc.RefractiveIndex), nil
	}
}

// Build validates and constructs the runtime sphere
func (sc SphereCfg) Build() (*geometry.Sphere, error) {
	if sc.Radius <= 0 {
		return nil, fmt.Errorf("radius must be > 0, got %g", sc.Radius)
	}
	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(sc.Center, sc.Radius, mat), nil
}

// Build constructs the camera configuration for the given aspect ratio
func (cc CameraCfg) Build(aspectRatio float64) renderer.CameraConfig {
	up := core.NewVec3(0, 1, 0)
	if cc.Up != nil {
		up = *cc.Up
	}
	vfov := cc.VFov
	if vfov <= 0 {
		vfov = DefaultVFov
	}
	return renderer.CameraConfig{
		LookFrom:      cc.LookFrom,
		LookAt:        cc.LookAt,
		Up:            up,
		VFov:          vfov,
		AspectRatio:   aspectRatio,
		Aperture:      cc.Aperture,
		FocusDistance: cc.FocusDistance,
	}
}

// World builds every sphere in file order
func (sf *SceneFile) World() (*geometry.World, error) {
	world := geometry.NewWorld()
	for i, sc := range sf.Spheres {
		sphere, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(sphere)
	}
	return world, nil
}

// CameraConfig returns the camera configuration with the image aspect ratio
func (sf *SceneFile) CameraConfig() renderer.CameraConfig {
	return sf.Camera.Build(float64(sf.Width) / float64(sf.Height))
}

// ParseScene decodes a JSON scene description, fills in defaults and validates it
func ParseScene(reader io.Reader) (*SceneFile, error) {
	var sf SceneFile
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	// Defaults / validation
	if sf.Width == 0 {
		sf.Width = DefaultWidth
	}
	if sf.Height == 0 {
		sf.Height = DefaultHeight
	}
	if sf.Width < 0 || sf.Height < 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", sf.Width, sf.Height)
	}
	if sf.Samples <= 0 {
		sf.Samples = DefaultSamples
	}
	if sf.MaxDepth <= 0 {
		sf.MaxDepth = DefaultMaxDepth
	}
	if sf.Camera.LookFrom.Equals(sf.Camera.LookAt) {
		return nil, fmt.Errorf("camera lookFrom and lookAt must differ")
	}
	if len(sf.Spheres) == 0 {
		return nil, fmt.Errorf("scene has no spheres")
	}

	// Catch bad objects now rather than when the world is built
	if _, err := sf.World(); err != nil {
		return nil, err
	}

	return &sf, nil
}

// LoadSceneFile loads and parses a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sf, nil
}

// ValidateSceneFilePath checks a path taken from an untrusted request.
// Only .json files under a scenes/ directory are allowed.
func ValidateSceneFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Clean the path to resolve . and .. components
	cleanPath := filepath.ToSlash(filepath.Clean(filename))

	// Clean leaves ".." only as leading segments: "../scenes/x.json" passes, "scenes/../x.json" does not
	if !strings.HasPrefix(cleanPath, "scenes/") && !strings.Contains(cleanPath, "/scenes/") {
		return fmt.Errorf("file path must be in scenes/ directory")
	}

	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	return nil
}
