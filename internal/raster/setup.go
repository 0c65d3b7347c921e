package raster

import (
	"path/filepath"

	"robot3d/internal/config"
	"robot3d/internal/texture"
)

// FromConfig builds a renderer for cfg. When a ground texture is configured
// it is loaded up front and its lookup name is returned for the ground draw
// command.
func FromConfig(cfg config.Config) (*Renderer, string, error) {
	r := New(cfg.Width, cfg.Height)
	r.Supersample = cfg.Supersample
	if cfg.GroundTexture == "" {
		return r, "", nil
	}

	idx := texture.BuildIndex(cfg.TextureDir)
	idx.Add(cfg.GroundTexture)
	cache := texture.NewCache(idx, nil)
	name := filepath.Base(cfg.GroundTexture)
	if err := cache.Preload(name); err != nil {
		return r, "", err
	}
	r.Textures = cache
	return r, name, nil
}
