package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	APIES   = "es"
	APICore = "core"

	RedrawContinuous = "continuous"
	RedrawEvents     = "events"

	DefaultTitle = "Nalin1o1 - 6  triangle Flower"
)

var ErrInvalidOptions = errors.New("invalid options")

type FlowerOptions struct {
	ConfigFile *string
	Help       *bool
	Width      *int
	Height     *int
	Title      *string
	API        *string // "es" for OpenGL ES 3.0, "core" for desktop 4.1 core with translated shaders
	Redraw     *string // "continuous" or "events"
	Headless   *bool
	Frames     *int // stop after this many frames, 0 runs until the window closes
	Verify     *bool
	Check      *bool // translate the shaders and exit without opening a window
	LogLevel   *string
	LogFormat  *string
}

// fileOptions is the YAML config file layout. Absent keys leave the flag
// defaults alone.
type fileOptions struct {
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
	Title     *string `yaml:"title"`
	API       *string `yaml:"api"`
	Redraw    *string `yaml:"redraw"`
	Headless  *bool   `yaml:"headless"`
	Frames    *int    `yaml:"frames"`
	Verify    *bool   `yaml:"verify"`
	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`
}

// Register defines the command-line flags on fs.
func Register(fs *flag.FlagSet) *FlowerOptions {
	return &FlowerOptions{
		ConfigFile: fs.String("config", "", "YAML config file; flags given on the command line take precedence"),
		Help:       fs.Bool("help", false, "Show help message"),
		Width:      fs.Int("width", 800, "Window width"),
		Height:     fs.Int("height", 600, "Window height"),
		Title:      fs.String("title", DefaultTitle, "Window title"),
		API:        fs.String("api", APIES, "Context API: es (OpenGL ES 3.0) or core (OpenGL 4.1 core)"),
		Redraw:     fs.String("redraw", RedrawContinuous, "Frame cadence: continuous or events (draw once per window event)"),
		Headless:   fs.Bool("headless", false, "Render into an EGL pbuffer instead of a window (Linux only)"),
		Frames:     fs.Int("frames", 0, "Stop after this many frames (0 = until the window closes, 1 when headless)"),
		Verify:     fs.Bool("verify", false, "Headless only: read back the last frame and check the triangle colors"),
		Check:      fs.Bool("check", false, "Translate the embedded shaders and exit"),
		LogLevel:   fs.String("log-level", "info", "Log level: debug, info, warn, error"),
		LogFormat:  fs.String("log-format", "console", "Log encoding: console or json"),
	}
}

// Load parses args into the options, overlays the config file for every flag
// not set explicitly, applies derived defaults and validates the result.
func Load(fs *flag.FlagSet, args []string) (*FlowerOptions, error) {
	opts := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *opts.ConfigFile != "" {
		data, err := os.ReadFile(*opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := opts.overlay(data, set); err != nil {
			return nil, err
		}
	}

	if *opts.Headless && *opts.Frames == 0 {
		*opts.Frames = 1
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *FlowerOptions) overlay(data []byte, set map[string]bool) error {
	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	overlayValue(o.Width, f.Width, set["width"])
	overlayValue(o.Height, f.Height, set["height"])
	overlayValue(o.Title, f.Title, set["title"])
	overlayValue(o.API, f.API, set["api"])
	overlayValue(o.Redraw, f.Redraw, set["redraw"])
	overlayValue(o.Headless, f.Headless, set["headless"])
	overlayValue(o.Frames, f.Frames, set["frames"])
	overlayValue(o.Verify, f.Verify, set["verify"])
	overlayValue(o.LogLevel, f.LogLevel, set["log-level"])
	overlayValue(o.LogFormat, f.LogFormat, set["log-format"])
	return nil
}

func overlayValue[T any](dst, src *T, fromFlag bool) {
	if src != nil && !fromFlag {
		*dst = *src
	}
}

func (o *FlowerOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidOptions, *o.Width, *o.Height)
	}
	switch *o.API {
	case APIES, APICore:
	default:
		return fmt.Errorf("%w: unknown api %q", ErrInvalidOptions, *o.API)
	}
	switch *o.Redraw {
	case RedrawContinuous, RedrawEvents:
	default:
		return fmt.Errorf("%w: unknown redraw mode %q", ErrInvalidOptions, *o.Redraw)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative", ErrInvalidOptions)
	}
	if *o.Verify && !*o.Headless {
		return fmt.Errorf("%w: -verify requires -headless", ErrInvalidOptions)
	}
	if *o.Headless && *o.API != APIES {
		return fmt.Errorf("%w: headless mode only supports the es api", ErrInvalidOptions)
	}
	switch *o.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidOptions, *o.LogFormat)
	}
	return nil
}
