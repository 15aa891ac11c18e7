package sources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Adapter kinds.
const (
	KindCardGrid = "cardgrid"
	KindNextData = "nextdata"
	KindJSONLD   = "jsonld"
)

// Page rendering modes.
const (
	RenderHTTP    = "http"
	RenderBrowser = "browser"
)

// ErrDuplicateSource is returned when two sources share a name.
var ErrDuplicateSource = errors.New("duplicate source name")

// SourceConfig is static per-source configuration.
type SourceConfig struct {
	Name        string        `yaml:"name" validate:"required,max=64"`
	Kind        string        `yaml:"kind" validate:"required,oneof=cardgrid nextdata jsonld"`
	BaseURL     string        `yaml:"baseUrl" validate:"required,url"`
	PageParam   string        `yaml:"pageParam"`
	FirstPage   *int          `yaml:"firstPage" validate:"omitempty,gte=0"`
	MaxPages    int           `yaml:"maxPages" validate:"gte=1,lte=200"`
	MaxListings int           `yaml:"maxListings" validate:"gte=0"`
	Delay       time.Duration `yaml:"delay" validate:"gte=0"`
	Workers     int           `yaml:"workers" validate:"eq=1"`
	Render      string        `yaml:"render" validate:"oneof=http browser"`
	// RequireImage drops listings without at least one image URL.
	RequireImage bool `yaml:"requireImage"`
	// Detail enables a per-listing detail page fetch.
	Detail    bool              `yaml:"detail"`
	Contact   Contact           `yaml:"contact"`
	Location  Location          `yaml:"location"`
	Selectors map[string]string `yaml:"selectors"`
	Paths     map[string]string `yaml:"paths"`
}

// Contact is static contact data attached to every listing of a source.
type Contact struct {
	Phone string `yaml:"phone"`
	Email string `yaml:"email" validate:"omitempty,email"`
}

// Location names the state and city listings of a source are located in.
type Location struct {
	State string `yaml:"state" validate:"required"`
	City  string `yaml:"city"`
}

// Selector returns configured selector or provided default.
func (c SourceConfig) Selector(name, def string) string {
	if v, ok := c.Selectors[name]; ok && v != "" {
		return v
	}
	return def
}

// StartPage returns number of the first page.
func (c SourceConfig) StartPage() int {
	if c.FirstPage == nil {
		return 1
	}
	return *c.FirstPage
}

// Path returns configured JSON path or provided default.
func (c SourceConfig) Path(name, def string) string {
	if v, ok := c.Paths[name]; ok && v != "" {
		return v
	}
	return def
}

type file struct {
	Sources []SourceConfig `yaml:"sources" validate:"required,min=1,dive"`
}

// Load reads and validates sources file from path.
func Load(path string) ([]SourceConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open sources file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes and validates sources from YAML reader, filling defaults.
func Decode(r io.Reader) ([]SourceConfig, error) {
	var cfg file
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("can't decode sources file: %w", err)
	}

	for ix := range cfg.Sources {
		setDefaults(&cfg.Sources[ix])
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid sources file: %w", err)
	}

	names := lo.Map(cfg.Sources, func(s SourceConfig, _ int) string { return s.Name })
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, dup[0])
	}

	return cfg.Sources, nil
}

func setDefaults(s *SourceConfig) {
	if s.PageParam == "" {
		s.PageParam = "page"
	}
	if s.FirstPage == nil {
		s.FirstPage = lo.ToPtr(1)
	}
	if s.MaxPages == 0 {
		s.MaxPages = 10
	}
	if s.Workers == 0 {
		s.Workers = 1
	}
	if s.Render == "" {
		s.Render = RenderHTTP
	}
}
