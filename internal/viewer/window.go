// Package viewer shows the robot in a desktop window.
package viewer

import (
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"robot3d/internal/host"
	"robot3d/internal/raster"
	"robot3d/internal/skeleton"
)

// Options configures the window.
type Options struct {
	Title         string
	Scale         float64
	Interval      time.Duration
	GroundTexture string
	Logger        *slog.Logger
}

// Run opens a window and blocks until it is closed.
func Run(loop *host.Loop, r *raster.Renderer, opts Options) error {
	g := &game{loop: loop, renderer: r, ground: opts.GroundTexture, logger: opts.Logger}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(int(float64(r.Width)*scale), int(float64(r.Height)*scale))
	ebiten.SetTPS(TPS(opts.Interval))

	g.logger.Info("window open", "width", r.Width, "height", r.Height, "tps", ebiten.TPS())
	return ebiten.RunGame(g)
}

// TPS converts a tick interval into ebiten updates per second, so one
// update is one timer firing.
func TPS(interval time.Duration) int {
	if interval <= 0 {
		return ebiten.DefaultTPS
	}
	tps := int(time.Second / interval)
	if tps < 1 {
		tps = 1
	}
	return tps
}

type game struct {
	loop     *host.Loop
	renderer *raster.Renderer
	ground   string
	logger   *slog.Logger

	keys  keyboard
	frame *ebiten.Image
}

func (g *game) Update() error {
	g.loop.Step(g.keys.poll())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.renderer.Width, g.renderer.Height)
	}
	if g.loop.Dirty() {
		start := time.Now()
		img := g.renderer.Frame(skeleton.Scene(g.loop.Pose(), g.ground))
		g.upload(img)
		g.loop.MarkDrawn()
		g.logger.Debug("frame rendered", "took", time.Since(start))
	}
	screen.DrawImage(g.frame, nil)
}

func (g *game) upload(img *image.NRGBA) {
	// Frames are opaque, so straight and premultiplied alpha agree.
	g.frame.WritePixels(img.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Width, g.renderer.Height
}
