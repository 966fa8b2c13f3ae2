package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-progressive-pathtracer/pkg/loaders"
)

const (
	builtInGroup    = "Built-in Scenes"
	jsonGroup       = "Scene Files"
	jsonScenePrefix = "json:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuiltInScenes lists the scenes compiled into the binary
func BuiltInScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "spheres",
			Name:        "Spheres",
			DisplayName: "Spheres",
			Description: "One sphere of every material on a green ground",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "random",
			Name:        "Random Spheres",
			DisplayName: "Random Spheres",
			Description: "Field of small random spheres around three large ones",
			Group:       builtInGroup,
			Type:        "builtin",
		},
		{
			ID:          "normals",
			Name:        "Normals",
			DisplayName: "Normals",
			Description: "Single sphere shaded by its surface normal",
			Group:       builtInGroup,
			Type:        "builtin",
		},
	}
}

// Create builds the scene with the given ID. Seed only affects the random scene.
func Create(id string, seed int64) (*Scene, error) {
	switch id {
	case "spheres", "default":
		return NewSpheresScene(), nil
	case "random":
		return NewRandomScene(seed), nil
	case "normals":
		return NewNormalsScene(), nil
	}

	if name, ok := strings.CutPrefix(id, jsonScenePrefix); ok {
		scenesDir := findScenesDir()
		if scenesDir == "" {
			return nil, fmt.Errorf("no scenes directory for %q", id)
		}
		filePath := filepath.Join(scenesDir, name+".json")
		if err := loaders.ValidateSceneFilePath(filePath); err != nil {
			return nil, err
		}
		return NewJSONScene(filePath)
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// findScenesDir returns the first scenes directory that exists, or ""
func findScenesDir() string {
	// Try different possible paths for scenes directory
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans the scenes directory and returns discovered scene files
func ListJSONScenes() ([]SceneInfo, error) {
	scenesDir := findScenesDir()
	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}
	return ListJSONScenesIn(scenesDir)
}

// ListJSONScenesIn returns the scene files found directly in dir
func ListJSONScenesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts the name, description and group of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          jsonScenePrefix + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       jsonGroup,
		Type:        "json",
		FilePath:    filePath,
	}

	sf, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	if sf.Name != "" {
		sceneInfo.Name = sf.Name
		sceneInfo.DisplayName = sf.Name
	}
	if sf.Description != "" {
		sceneInfo.Description = sf.Description
	}
	if sf.Group != "" {
		sceneInfo.Group = sf.Group
	}

	return sceneInfo, nil
}

// ListAllScenes returns both built-in scenes and scene files, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	jsonScenes, err := ListJSONScenes()
	if err != nil {
		return ScenesResponse{}, fmt.Errorf("failed to list scene files: %w", err)
	}
	return groupScenes(append(BuiltInScenes(), jsonScenes...)), nil
}

// groupScenes groups scenes by their Group field, built-in first then alphabetical
func groupScenes(allScenes []SceneInfo) ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtInGroup,
			Scenes: builtIn,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
