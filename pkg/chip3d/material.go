package chip3d

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/qchip/pkg/errors"
)

// Material palette keys.
const (
	MatAluminum  = "aluminum"  // first-layer islands and data-qubit bodies
	MatAluminum2 = "aluminum2" // second-layer bridges
	MatJunction  = "junction"
	MatSubstrate = "substrate"
	MatCoupler   = "coupler"
)

// Material is a metallic surface description.
type Material struct {
	Key        string     `json:"key"`
	Name       string     `json:"name"`
	Color      [4]float64 `json:"color"` // linear RGBA
	Metallic   float64    `json:"metallic"`
	Roughness  float64    `json:"roughness"`
	Bump       float64    `json:"bump"`
	NoiseScale float64    `json:"noise_scale"`
}

var palette = map[string]Material{
	MatAluminum:  {Color: [4]float64{0.62, 0.66, 0.78, 1}, Metallic: 0.90, Roughness: 0.40, Bump: 0.7, NoiseScale: 500},
	MatAluminum2: {Color: [4]float64{0.55, 0.60, 0.74, 1}, Metallic: 0.90, Roughness: 0.45, Bump: 0.9, NoiseScale: 600},
	MatJunction:  {Color: [4]float64{0.50, 0.53, 0.62, 1}, Metallic: 0.80, Roughness: 0.50, Bump: 0.5, NoiseScale: 400},
	MatSubstrate: {Color: [4]float64{0.35, 0.35, 0.37, 1}, Metallic: 0.05, Roughness: 0.12, Bump: 0.15, NoiseScale: 150},
	MatCoupler:   {Color: [4]float64{0.72, 0.63, 0.38, 1}, Metallic: 0.90, Roughness: 0.35, Bump: 0.7, NoiseScale: 500},
}

// MaterialKeys lists the palette keys in sorted order.
func MaterialKeys() []string { return slices.Sorted(maps.Keys(palette)) }

// MaterialCache hands out palette materials, creating each on first use.
// A cache belongs to one render session; Clear drops everything it created.
type MaterialCache struct {
	mu   sync.Mutex
	mats map[string]Material
}

func NewMaterialCache() *MaterialCache {
	return &MaterialCache{mats: make(map[string]Material)}
}

// Get returns the material for key, creating it if needed.
func (c *MaterialCache) Get(key string) (Material, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.mats[key]; ok {
		return m, nil
	}
	m, ok := palette[key]
	if !ok {
		return Material{}, errors.New(errors.ErrCodeMaterialNotFound,
			"unknown material %q (valid: %v)", key, MaterialKeys())
	}
	m.Key = key
	m.Name = "Mat_" + key
	c.mats[key] = m
	return m, nil
}

// Len returns the number of materials created so far.
func (c *MaterialCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.mats)
}

// Materials returns the created materials sorted by key.
func (c *MaterialCache) Materials() []Material {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Material, 0, len(c.mats))
	for _, k := range slices.Sorted(maps.Keys(c.mats)) {
		out = append(out, c.mats[k])
	}
	return out
}

// Clear forgets every created material.
func (c *MaterialCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.mats)
}

// WriteMTL writes a Wavefront material library. Metallic and roughness use
// the PBR extension keys Pm and Pr.
func WriteMTL(w io.Writer, mats []Material) error {
	bw := bufio.NewWriter(w)
	for _, m := range mats {
		r, g, b, a := m.Color[0], m.Color[1], m.Color[2], m.Color[3]
		fmt.Fprintf(bw, "newmtl %s\n", m.Name)
		fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", r, g, b)
		fmt.Fprintf(bw, "Ks 0.1500 0.1500 0.1500\n")
		fmt.Fprintf(bw, "Ns %.1f\n", (1-m.Roughness)*1000)
		fmt.Fprintf(bw, "d %.4f\n", a)
		fmt.Fprintf(bw, "Pm %.4f\nPr %.4f\n", m.Metallic, m.Roughness)
		fmt.Fprintf(bw, "illum 2\n\n")
	}
	return bw.Flush()
}
