// package config loads the service configuration from defaults, an
// optional YAML file and IMPORTER_ prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/davseby/asyncapi-importer/internal/capture"
	"github.com/davseby/asyncapi-importer/internal/catalog"
	"github.com/davseby/asyncapi-importer/internal/importer"
	"github.com/davseby/asyncapi-importer/internal/server"
	"golang.org/x/exp/slog"
)

// _envPrefix is the prefix of the environment variables.
const _envPrefix = "IMPORTER"

// Config holds the whole service configuration.
type Config struct {
	Log      Log             `yaml:"log"`
	Server   server.Config   `yaml:"server"`
	Catalog  catalog.Config  `yaml:"catalog"`
	Capture  capture.Config  `yaml:"capture"`
	Importer importer.Config `yaml:"importer"`
}

// Log holds the process logging settings.
type Log struct {
	// Level is the minimum level written to the standard output.
	Level string `default:"info" yaml:"level"`

	// Format is either json or text.
	Format string `default:"json" yaml:"format"`
}

// Load loads the configuration. The file is optional; when the path is
// set the file must exist.
func Load(path string) (Config, error) {
	var cfg Config

	acfg := aconfig.Config{
		SkipFlags:          true,
		EnvPrefix:          _envPrefix,
		FailOnFileNotFound: true,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
			".yml":  aconfigyaml.New(),
		},
	}

	if path != "" {
		acfg.Files = []string{path}
	} else {
		acfg.SkipFiles = true
	}

	if err := aconfig.LoaderFor(&cfg, acfg).Load(); err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	return cfg, nil
}

// Handler creates the base log handler writing to the standard output.
func (l Log) Handler() (slog.Handler, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(l.Format) {
	case "json":
		return slog.NewJSONHandler(os.Stdout, opts), nil
	case "text":
		return slog.NewTextHandler(os.Stdout, opts), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", l.Format)
	}
}
