// Package material defines the fixed-function surface parameters of the rig.
package material

// Material holds RGBA reflectance terms and the specular exponent.
type Material struct {
	Name      string
	Ambient   [4]float64
	Diffuse   [4]float64
	Specular  [4]float64
	Shininess float64
}

// Colours follow the classic OpenGL material tables.
var (
	// CyanRubber is the torso.
	CyanRubber = Material{
		Name:      "cyan-rubber",
		Ambient:   [4]float64{0.0, 0.05, 0.05, 1},
		Diffuse:   [4]float64{0.04, 0.7, 0.7, 1},
		Specular:  [4]float64{0.4, 0.5, 0.5, 1},
		Shininess: 10,
	}

	// BlackRubber is the barrel rings and shins.
	BlackRubber = Material{
		Name:      "black-rubber",
		Ambient:   [4]float64{0.02, 0.02, 0.02, 1},
		Diffuse:   [4]float64{0.01, 0.01, 0.01, 1},
		Specular:  [4]float64{0.4, 0.4, 0.4, 1},
		Shininess: 10,
	}

	// Chrome is the guns, hip blocks, thighs and feet.
	Chrome = Material{
		Name:      "chrome",
		Ambient:   [4]float64{0.25, 0.25, 0.25, 1},
		Diffuse:   [4]float64{0.4, 0.4, 0.4, 1},
		Specular:  [4]float64{0.774597, 0.774597, 0.774597, 1},
		Shininess: 76.8,
	}

	// Grass is the ground mesh.
	Grass = Material{
		Name:      "grass",
		Ambient:   [4]float64{0.0, 0.05, 0.0, 1},
		Diffuse:   [4]float64{0.4, 0.8, 0.4, 1},
		Specular:  [4]float64{0.04, 0.04, 0.04, 1},
		Shininess: 0.2,
	}
)
