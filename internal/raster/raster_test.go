package raster

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"robot3d/internal/config"
	"robot3d/internal/material"
	"robot3d/internal/mathutil"
	"robot3d/internal/mesh"
	"robot3d/internal/pose"
	"robot3d/internal/skeleton"
)

func TestRenderDefaultScene(t *testing.T) {
	r := New(160, 120)
	img := r.Render(skeleton.Scene(pose.New(), ""))

	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Fatalf("size = %v", b)
	}
	if got := img.NRGBAAt(0, 0); got != DefaultBackground {
		t.Errorf("corner = %v, want background %v", got, DefaultBackground)
	}
	if got := img.NRGBAAt(80, 60); got == DefaultBackground {
		t.Error("centre pixel is background; robot not drawn")
	}
}

func TestFrameSupersample(t *testing.T) {
	r := New(80, 60)
	r.Supersample = 2
	if b := r.Render(skeleton.Compose(pose.New())).Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("render size = %v, want 160x120", b)
	}
	if b := r.Frame(skeleton.Compose(pose.New())).Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("frame size = %v, want 80x60", b)
	}
}

func quadAt(z float64, m material.Material) skeleton.DrawCmd {
	// A 10x10 square facing the camera, centred below the view axis.
	tr := mathutil.Mat4Mul(
		mathutil.Translation(mathutil.Vec3{0, -3, z}),
		mathutil.Rotation(90, mathutil.AxisX),
	)
	tr = mathutil.Mat4Mul(tr, mathutil.Scaling(mathutil.Vec3{10, 1, 10}))
	return skeleton.DrawCmd{Part: "quad", Prim: mesh.Grid(1, 1), Transform: tr, Material: m}
}

func TestDepthTestIndependentOfOrder(t *testing.T) {
	near := quadAt(5, material.CyanRubber)
	far := quadAt(-5, material.Chrome)

	r := New(64, 64)
	a := r.Render([]skeleton.DrawCmd{far, near}).NRGBAAt(32, 32)
	b := r.Render([]skeleton.DrawCmd{near, far}).NRGBAAt(32, 32)
	if a != b {
		t.Errorf("draw order changed the visible surface: %v vs %v", a, b)
	}
	only := r.Render([]skeleton.DrawCmd{near}).NRGBAAt(32, 32)
	if a != only {
		t.Errorf("far quad shows through: %v, want %v", a, only)
	}
}

func TestClearResetsDepth(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	fb.ZBuf[5] = 0.5
	fb.Clear(color.NRGBA{1, 2, 3, 4})
	if d := fb.DepthAt(1, 1); !math.IsInf(d, -1) {
		t.Errorf("depth = %v after clear", d)
	}
	if fb.Color[4*7+2] != 3 {
		t.Errorf("color not cleared")
	}
}

func TestRasterizeTriangleCoverage(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	px := []float64{0, 10, 0}
	py := []float64{0, 0, 10}
	pz := []float64{0, 0, 0}
	RasterizeTriangle(fb, px, py, pz, nil, [3]int{0, 1, 2}, nil, [3]float64{1, 0, 0}, 255)

	inside := (2*fb.Width + 2) * 4
	if fb.Color[inside] != 255 || fb.Color[inside+3] != 255 {
		t.Errorf("pixel (2,2) not filled: %v", fb.Color[inside:inside+4])
	}
	outside := (9*fb.Width + 9) * 4
	if fb.Color[outside+3] != 0 {
		t.Errorf("pixel (9,9) filled")
	}
}

func TestRasterizeTriangleRejectsOutOfRangeIndex(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	RasterizeTriangle(fb, []float64{0}, []float64{0}, []float64{0}, nil, [3]int{0, 1, 2}, nil, [3]float64{1, 1, 1}, 255)
	for _, c := range fb.Color {
		if c != 0 {
			t.Fatal("wrote pixels for an invalid triangle")
		}
	}
}

func TestShadeFacingLightIsBrighter(t *testing.T) {
	lc := DefaultLightConfig()
	pos := mathutil.Vec3{0, 0, -10}
	lit := lc.Shade(&material.CyanRubber, pos, mathutil.Vec3{0, 0.6, 0.8}.Normalize())
	dark := lc.Shade(&material.CyanRubber, pos, mathutil.Vec3{0, -1, 0})
	if !(lit[1] > dark[1]) {
		t.Errorf("lit green %v not brighter than unlit %v", lit[1], dark[1])
	}
	for _, v := range lit {
		if v < 0 || v > 1 {
			t.Errorf("component %v outside [0, 1]", v)
		}
	}
}

func TestTexturedGround(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(tex.Pix); i += 4 {
		tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3] = 255, 0, 0, 255
	}
	r := New(64, 64)
	r.Textures = staticResolver{"red": tex}

	cmd := quadAt(0, material.Grass)
	cmd.Texture = "red"
	got := r.Render([]skeleton.DrawCmd{cmd}).NRGBAAt(32, 32)
	if got.R == 0 || got.G != 0 || got.B != 0 {
		t.Errorf("textured pixel = %v, want red only", got)
	}
}

type staticResolver map[string]*image.NRGBA

func (s staticResolver) Resolve(name string) *image.NRGBA { return s[name] }

func TestFromConfig(t *testing.T) {
	cfg := config.Config{}
	cfg.Resolve(config.Flags{Width: 40, Height: 30, Supersample: 3})

	r, ground, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if r.Width != 40 || r.Height != 30 || r.Supersample != 3 {
		t.Errorf("renderer %dx%d ss %d", r.Width, r.Height, r.Supersample)
	}
	if ground != "" || r.Textures != nil {
		t.Error("no ground texture was configured")
	}

	cfg.GroundTexture = filepath.Join(t.TempDir(), "grass.tga")
	if _, _, err := FromConfig(cfg); err == nil {
		t.Error("expected an error for a missing ground texture")
	}

	path := filepath.Join(t.TempDir(), "grass.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	f.Close()

	cfg.GroundTexture = path
	r, ground, err = FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if ground != "grass.png" || r.Textures.Resolve(ground) == nil {
		t.Errorf("ground %q did not resolve", ground)
	}
}
