package raster

import (
	"image"
	"image/color"

	"robot3d/internal/camera"
	"robot3d/internal/mathutil"
	"robot3d/internal/mesh"
	"robot3d/internal/postprocess"
	"robot3d/internal/skeleton"
	"robot3d/internal/texture"
)

// DefaultBackground is the clear color (40% grey).
var DefaultBackground = color.NRGBA{R: 102, G: 102, B: 102, A: 255}

// Renderer rasterizes draw commands from a fixed camera.
// A Renderer may be shared by goroutines as long as its fields are not
// modified while rendering.
type Renderer struct {
	Camera      camera.Camera
	Lights      LightConfig
	Width       int
	Height      int
	Supersample int
	Background  color.NRGBA
	Meshes      *mesh.Cache
	Textures    texture.Resolver
}

// New returns a renderer with the default camera, lights and background.
func New(width, height int) *Renderer {
	return &Renderer{
		Camera:      camera.Default(),
		Lights:      DefaultLightConfig(),
		Width:       width,
		Height:      height,
		Supersample: 1,
		Background:  DefaultBackground,
		Meshes:      mesh.NewCache(),
	}
}

// Frame renders cmds and downsamples to Width×Height.
func (r *Renderer) Frame(cmds []skeleton.DrawCmd) *image.NRGBA {
	img := r.Render(cmds)
	if r.Supersample > 1 {
		img = postprocess.Downsample(img, r.Width, r.Height)
	}
	return img
}

// Render rasterizes cmds at Width×Height times Supersample.
func (r *Renderer) Render(cmds []skeleton.DrawCmd) *image.NRGBA {
	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}
	rw, rh := r.Width*ss, r.Height*ss

	fb := NewFrameBuffer(rw, rh)
	fb.Clear(r.Background)
	r.Draw(fb, cmds)

	return fb.Image()
}

// Draw rasterizes cmds into fb without clearing it.
func (r *Renderer) Draw(fb *FrameBuffer, cmds []skeleton.DrawCmd) {
	meshes := r.Meshes
	if meshes == nil {
		meshes = mesh.NewCache()
	}
	view := r.Camera.View()
	proj := r.Camera.Projection(float64(fb.Width) / float64(fb.Height))

	for i := range cmds {
		cmd := &cmds[i]
		m := meshes.Get(cmd.Prim)
		if len(m.Verts) == 0 {
			continue
		}

		mv := mathutil.Mat4Mul(view, cmd.Transform)
		p := camera.ProjectVertices(m.Verts, mv, proj, fb.Width, fb.Height)

		var tex *image.NRGBA
		if cmd.Texture != "" && r.Textures != nil {
			tex = r.Textures.Resolve(cmd.Texture)
		}
		alpha := clamp255(cmd.Material.Diffuse[3] * 255)

		for _, tri := range m.Tris {
			r.face(fb, &p, m.UVs, [3]int{int(tri.VI[0]), int(tri.VI[1]), int(tri.VI[2])}, tex, cmd, alpha)

			// Quad: second triangle
			if tri.Polygon == 4 {
				r.face(fb, &p, m.UVs, [3]int{int(tri.VI[0]), int(tri.VI[2]), int(tri.VI[3])}, tex, cmd, alpha)
			}
		}
	}
}

func (r *Renderer) face(fb *FrameBuffer, p *camera.Projected, uvs [][2]float64, vi [3]int, tex *image.NRGBA, cmd *skeleton.DrawCmd, alpha uint8) {
	// Triangles crossing the near plane are dropped rather than clipped.
	if p.Behind[vi[0]] || p.Behind[vi[1]] || p.Behind[vi[2]] {
		return
	}

	a, b, c := p.Eye[vi[0]], p.Eye[vi[1]], p.Eye[vi[2]]
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if n == (mathutil.Vec3{}) {
		return
	}
	centroid := a.Add(b).Add(c).Scale(1.0 / 3)
	// Light the side facing the viewer.
	if n.Dot(centroid) > 0 {
		n = n.Neg()
	}

	shade := r.Lights.Shade(&cmd.Material, centroid, n)
	RasterizeTriangle(fb, p.PX, p.PY, p.PZ, uvs, vi, tex, shade, alpha)
}
