package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Record geometry.Hit
	Sphere *geometry.Sphere // nil if the hit object is not a sphere
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	clamp := func(c float64) int { return int(max(0, min(1, c)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(v.X), clamp(v.Y), clamp(v.Z))
}

// extractMaterialInfo describes a material for the inspector
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	}

	return mat.Kind.String(), properties
}

// extractGeometryInfo describes the hit object for the inspector
func (s *Server) extractGeometryInfo(sphere *geometry.Sphere) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if sphere == nil {
		return "unknown", properties
	}
	properties["center"] = vecArray(sphere.Center)
	properties["radius"] = sphere.Radius
	return "sphere", properties
}

// inspectPixel casts a ray through the centre of pixel (pixelX, pixelY), with
// y=0 at the top of the image, and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	width := sceneObj.SamplingConfig.Width
	height := sceneObj.SamplingConfig.Height

	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)

	// A constant 0.5 puts the lens sample at the centre of the aperture
	ray := sceneObj.Camera().GetRay(s, t, core.NewSequenceSampler(0.5))

	config := integrator.DefaultConfig()
	hit, isHit := sceneObj.World.Hit(ray, config.Epsilon, config.MaxT)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// Find the specific sphere that was hit (World doesn't return the object)
	for _, object := range sceneObj.World.Objects {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if sphereHit, ok := sphere.Hit(ray, config.Epsilon, config.MaxT); ok && sphereHit.T == hit.T {
			return InspectResult{Hit: true, Record: hit, Sphere: sphere}
		}
	}

	return InspectResult{Hit: true, Record: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneObj.ApplySamplingOverrides(scene.SamplingConfig{Width: req.Width, Height: req.Height})

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.Record.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Sphere)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.Record.Point()),
		Normal:       vecArray(result.Record.Normal.Direction),
		Distance:     result.Record.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
