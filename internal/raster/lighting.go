package raster

import (
	"math"

	"robot3d/internal/material"
	"robot3d/internal/mathutil"
)

// Light is a white point light positioned in eye space.
type Light struct {
	Position mathutil.Vec3
	Ambient  [4]float64
	Diffuse  [4]float64
	Specular [4]float64
}

// LightConfig holds the fixed-function lighting model.
type LightConfig struct {
	GlobalAmbient [4]float64
	Lights        []Light
}

// DefaultLightConfig returns two white lights above and in front of the
// camera, left and right.
func DefaultLightConfig() LightConfig {
	white := [4]float64{1, 1, 1, 1}
	ambient := [4]float64{0.2, 0.2, 0.2, 1}
	return LightConfig{
		GlobalAmbient: [4]float64{0.2, 0.2, 0.2, 1},
		Lights: []Light{
			{Position: mathutil.Vec3{-4, 8, 8}, Ambient: ambient, Diffuse: white, Specular: white},
			{Position: mathutil.Vec3{4, 8, 8}, Ambient: ambient, Diffuse: white, Specular: white},
		},
	}
}

// viewerDir is the infinite-viewer direction in eye space.
var viewerDir = mathutil.Vec3{0, 0, 1}

// Shade returns the lit RGB color in [0, 1] of a surface point pos with unit
// normal n, both in eye space.
func (lc *LightConfig) Shade(m *material.Material, pos, n mathutil.Vec3) [3]float64 {
	var c [3]float64
	for k := 0; k < 3; k++ {
		c[k] = m.Ambient[k] * lc.GlobalAmbient[k]
	}

	for i := range lc.Lights {
		l := &lc.Lights[i]
		toLight := l.Position.Sub(pos).Normalize()
		ndl := n.Dot(toLight)

		var spec float64
		if ndl > 0 {
			h := toLight.Add(viewerDir).Normalize()
			if ndh := n.Dot(h); ndh > 0 {
				spec = math.Pow(ndh, m.Shininess)
			}
		} else {
			ndl = 0
		}

		for k := 0; k < 3; k++ {
			c[k] += l.Ambient[k]*m.Ambient[k] +
				ndl*l.Diffuse[k]*m.Diffuse[k] +
				spec*l.Specular[k]*m.Specular[k]
		}
	}

	for k := range c {
		c[k] = clamp01(c[k])
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
