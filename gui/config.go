package gui

import (
	"fmt"
	"os"
	"time"

	units "github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of a Bridge. Sizes are human readable strings
// such as "64KiB" or "1m".
type Config struct {
	// ShowDemoWindow is the initial state of the demo window flag.
	ShowDemoWindow bool `toml:"show_demo_window"`
	// InitialVertexBuffer is the first size of each per frame vertex buffer.
	InitialVertexBuffer string `toml:"initial_vertex_buffer"`
	// InitialIndexBuffer is the first size of each per frame index buffer.
	InitialIndexBuffer string `toml:"initial_index_buffer"`
	// FramesInFlight raises the number of per frame buffer slots above the
	// window's frames in flight. Smaller values are ignored.
	FramesInFlight int `toml:"frames_in_flight"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		InitialVertexBuffer: "64KiB",
		InitialIndexBuffer:  "16KiB",
	}
}

// ParseConfig decodes a TOML document. Keys not present keep their
// default value.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("unable to parse gui config: %w", err)
	}
	return c, c.Validate()
}

// LoadConfig reads and decodes the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("unable to read gui config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks that every size parses and is positive.
func (c Config) Validate() error {
	if _, err := c.vertexBufferSize(); err != nil {
		return err
	}
	if _, err := c.indexBufferSize(); err != nil {
		return err
	}
	if c.FramesInFlight < 0 {
		return fmt.Errorf("frames_in_flight must not be negative, got %d", c.FramesInFlight)
	}
	return nil
}

func (c Config) vertexBufferSize() (int, error) {
	return parseSize("initial_vertex_buffer", c.InitialVertexBuffer)
}

func (c Config) indexBufferSize() (int, error) {
	return parseSize("initial_index_buffer", c.InitialIndexBuffer)
}

func parseSize(key, s string) (int, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, s)
	}
	return int(n), nil
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithConfig replaces the default configuration.
func WithConfig(c Config) Option {
	return func(b *Bridge) {
		b.cfg = c
	}
}

// WithClock replaces time.Now when computing the frame delta time.
func WithClock(now func() time.Time) Option {
	return func(b *Bridge) {
		b.now = now
	}
}
