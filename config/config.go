// Package config parses the command line, with defaults taken from the
// environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that provide flag defaults.
const (
	EnvLimits   = "ARPAINT_LIMITS"
	EnvCamera   = "ARPAINT_CAMERA"
	EnvOut      = "ARPAINT_OUT"
	EnvSpectate = "ARPAINT_SPECTATE"
)

// Config is the parsed program configuration.
type Config struct {
	LimitsPath    string
	UseMouse      bool
	PreventShake  bool
	Coloring      bool
	Camera        int
	OutDir        string
	Mirror        bool
	Smooth        bool
	Spectate      string
	Seed          int64
	Debug         bool
	DebugVerbose  bool
	StatusOverlay bool
}

// LoadEnv loads the given .env files (default ".env") into the process
// environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// NewFlagSet declares every flag on a new FlagSet bound to cfg. Defaults come
// from getenv where an environment variable exists for the flag.
func NewFlagSet(name string, cfg *Config, getenv func(string) string) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)

	limitsDefault := getenv(EnvLimits)
	cameraDefault := 0
	if v, err := strconv.Atoi(getenv(EnvCamera)); err == nil {
		cameraDefault = v
	}
	outDefault := getenv(EnvOut)
	if outDefault == "" {
		outDefault = "."
	}

	limitsUsage := "Path to the colour limits JSON written by the segmenter (required)\n\t\tExample: -json limits.json"
	set.StringVar(&cfg.LimitsPath, "json", limitsDefault, limitsUsage)
	set.StringVar(&cfg.LimitsPath, "j", limitsDefault, "Shorthand for -json")

	mouseUsage := "Draw with the mouse instead of the tracked colour (hold the left button to draw)"
	set.BoolVar(&cfg.UseMouse, "mouse", false, mouseUsage)
	set.BoolVar(&cfg.UseMouse, "m", false, "Shorthand for -mouse")

	set.BoolVar(&cfg.PreventShake, "usp", false, "Use shake prevention: a jump of more than 50 px on either axis starts a new stroke instead of drawing a line")
	set.BoolVar(&cfg.Coloring, "coloring", false, "Colouring-book mode: paint numbered zones with their colours and press 'v' to grade the page")
	set.IntVar(&cfg.Camera, "camera", cameraDefault, "Camera device index\n\t\tExample: -camera=1 for an external webcam")
	set.StringVar(&cfg.OutDir, "out", outDefault, "Directory where 'w' saves drawings\n\t\tExample: -out=/tmp/drawings")
	set.BoolVar(&cfg.Mirror, "mirror", false, "Mirror the camera image horizontally")
	set.BoolVar(&cfg.Smooth, "smooth", false, "Smooth the pencil position with a Kalman filter")
	set.StringVar(&cfg.Spectate, "spectate", getenv(EnvSpectate), "Serve a read-only spectator feed on this address\n\t\tExample: -spectate=:8080")
	set.Int64Var(&cfg.Seed, "seed", 0, "Seed for the colouring grid (0 picks one from the clock)")
	set.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	set.BoolVar(&cfg.DebugVerbose, "debug-verbose", false, "Enable per-frame debug output (pencil positions, moves, overlay text)")
	set.BoolVar(&cfg.StatusOverlay, "status-overlay", false, "Show pencil colour, thickness, mode and FPS in the lower-left corner")

	return set
}

// Parse parses args into a validated Config.
func Parse(name string, args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	set := NewFlagSet(name, cfg, getenv)
	set.SetOutput(output)
	set.Usage = func() { Usage(output, name, set) }

	if err := set.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnvironment parses os.Args with defaults from os.Getenv.
func FromEnvironment() (*Config, error) {
	return Parse(os.Args[0], os.Args[1:], os.Getenv, os.Stderr)
}

// Validate checks flag combinations.
func (c *Config) Validate() error {
	if c.LimitsPath == "" {
		return fmt.Errorf("-json is required (or set %s)", EnvLimits)
	}
	if c.Camera < 0 {
		return fmt.Errorf("-camera must be >= 0, got %d", c.Camera)
	}
	if c.OutDir == "" {
		return fmt.Errorf("-out must not be empty")
	}
	if c.DebugVerbose && !c.Debug {
		c.Debug = true
	}
	return nil
}

// Usage prints usage examples followed by the flag defaults.
func Usage(w io.Writer, name string, set *flag.FlagSet) {
	fmt.Fprintf(w, "\n🎨 %s - augmented reality paint\n", name)
	fmt.Fprintln(w, "================================================================")
	fmt.Fprintln(w, "\n💡 USAGE EXAMPLES:")
	fmt.Fprintln(w, "\n  Calibrate the pencil colour first:")
	fmt.Fprintln(w, "    go run ./calibration/segmenter")
	fmt.Fprintln(w, "\n  Draw with the tracked colour:")
	fmt.Fprintf(w, "    ./%s -j limits.json\n", name)
	fmt.Fprintln(w, "\n  Draw with the mouse, with shake prevention:")
	fmt.Fprintf(w, "    ./%s -j limits.json -m -usp\n", name)
	fmt.Fprintln(w, "\n  Colouring-book mode with a fixed grid:")
	fmt.Fprintf(w, "    ./%s -j limits.json -coloring -seed=42\n", name)
	fmt.Fprintln(w, "\n  Spectator feed on port 8080:")
	fmt.Fprintf(w, "    ./%s -j limits.json -spectate=:8080\n", name)
	fmt.Fprintln(w, "\n⌨️  KEYS:")
	fmt.Fprintln(w, "  r/g/b colour, +/- thickness, c clear, w save, s/e/o square/ellipse/circle, v grade page, q quit")
	fmt.Fprintln(w, "\n🔧 FLAGS:")
	set.PrintDefaults()
}
