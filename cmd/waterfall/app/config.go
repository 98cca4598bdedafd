package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

type ImageFormat string

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
)

type ColorTheme string

// Config holds the waterfall renderer options.
type Config struct {
	DBPath     string
	SessionID  int64
	OutputFile string
	Format     ImageFormat
	Theme      ColorTheme
	MaxWidth   int
	Verbose    bool
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

var validThemes = map[ColorTheme]struct{}{
	ClassicTheme:   {},
	GrayscaleTheme: {},
}

func NewConfig() *Config {
	return &Config{
		Format:   ImagePNG,
		Theme:    ClassicTheme,
		MaxWidth: 2048,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat, theme string
	flag.StringVar(&c.DBPath, "db", "", "Path to the observation database file")
	flag.Int64Var(&c.SessionID, "s", 1, "Session ID")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.StringVar(&theme, "theme", string(ClassicTheme), "Color theme. [classic, grayscale]")
	flag.IntVar(&c.MaxWidth, "max-width", c.MaxWidth, "Maximum waterfall width in pixels; longer observations are rebinned to fit")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	c.Format = ImageFormat(strings.ToLower(imageFormat))
	c.Theme = ColorTheme(strings.ToLower(theme))

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return errors.New("no database file provided")
	}
	if c.OutputFile == "" {
		return errors.New("no output file provided")
	}
	if c.SessionID <= 0 {
		return fmt.Errorf("invalid session ID %d", c.SessionID)
	}
	if _, ok := validImageFormats[c.Format]; !ok {
		return fmt.Errorf("unknown image format '%s'", c.Format)
	}
	if _, ok := validThemes[c.Theme]; !ok {
		return fmt.Errorf("unknown color theme '%s'", c.Theme)
	}
	if c.MaxWidth < 16 {
		return fmt.Errorf("max width %d too small", c.MaxWidth)
	}
	return nil
}
