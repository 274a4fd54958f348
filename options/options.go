package options

import "flag"

type ViewerOptions struct {
	Width     *int
	Height    *int
	Scene     *string // TOML or YAML scene file; empty selects the built-in scene
	Assets    *string // directory texture paths in the scene are relative to
	VSync     *bool
	Translate *bool // run shader sources through the translator before compiling
	Help      *bool
}

// Register defines the viewer flags on fs.
func Register(fs *flag.FlagSet) *ViewerOptions {
	return &ViewerOptions{
		Width:     fs.Int("width", 1200, "Window width"),
		Height:    fs.Int("height", 900, "Window height"),
		Scene:     fs.String("scene", "", "Scene file (.toml, .yaml or .yml); the built-in scene is used if empty"),
		Assets:    fs.String("assets", "assets", "Directory texture paths are resolved against"),
		VSync:     fs.Bool("vsync", false, "Wait for vertical sync when presenting frames"),
		Translate: fs.Bool("translate", true, "Translate shaders to the context's GLSL dialect before compiling"),
		Help:      fs.Bool("help", false, "Show help message"),
	}
}
