package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Arena is a flat walled floor. Coordinates are world units on the XZ plane,
// the floor sits at y = FloorY.
type Arena struct {
	Name   string     `json:"name"`
	Width  float32    `json:"width"`
	Depth  float32    `json:"depth"`
	FloorY float32    `json:"floor_y"`
	Spawn  [3]float32 `json:"spawn"`
	Walls  []Wall     `json:"walls,omitempty"`
}

// Wall is an axis-aligned box spanning [X, X+W] by [Z, Z+D].
type Wall struct {
	X float32 `json:"x"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
	D float32 `json:"d"`
}

// LoadArena reads an embedded arena by name; the .json extension is
// optional.
func LoadArena(name string) (*Arena, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read arena %s: %w", name, err)
	}
	return ParseArena(data)
}

func ParseArena(data []byte) (*Arena, error) {
	var a Arena
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("levels: unmarshal arena: %w", err)
	}
	if a.Width <= 0 || a.Depth <= 0 {
		return nil, fmt.Errorf("arena %q: invalid size %vx%v", a.Name, a.Width, a.Depth)
	}
	for i, w := range a.Walls {
		if w.W <= 0 || w.D <= 0 {
			return nil, fmt.Errorf("arena %q: wall %d has invalid size %vx%v", a.Name, i, w.W, w.D)
		}
	}
	return &a, nil
}
