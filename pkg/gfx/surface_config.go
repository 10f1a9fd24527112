package gfx

// SurfaceConfig describes the window or canvas a Context renders into.
type SurfaceConfig struct {
	PositionX   int
	PositionY   int
	Width       int
	Height      int
	BorderWidth int
	Title       string
}

func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		Width:  800,
		Height: 600,
		Title:  "gokshader",
	}
}

// Normalize fills zero dimensions and title with defaults.
func (c SurfaceConfig) Normalize() SurfaceConfig {
	def := DefaultSurfaceConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.BorderWidth < 0 {
		c.BorderWidth = 0
	}
	return c
}
