package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacoelho/jsonschema"
)

type config struct {
	schema     string
	format     jsonschema.Format
	jobs       int
	output     outputFormat
	color      colorMode
	maxNodes   int
	verbose    bool
	cpuProfile string
	memProfile string
}

func registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("schema", "s", "", "path to JSON Schema file")
	flags.String("format", "auto", "schema file format: auto, json or yaml (documents are detected by extension)")
	flags.IntP("jobs", "j", runtime.GOMAXPROCS(0), "documents validated concurrently")
	flags.StringP("output", "o", "text", "report format: text or json")
	flags.String("color", "auto", "colored output: auto, always or never")
	flags.Int("max-schema-nodes", 0, "maximum schema nodes (0 uses the default)")
	flags.BoolP("verbose", "v", false, "log loading details to stderr")
	flags.String("config", "", "config file (default .jsonlint.yaml in the working directory)")
	flags.String("cpuprofile", "", "write CPU profile to file")
	flags.String("memprofile", "", "write memory profile to file")
}

// loadConfig layers flags over JSONLINT_* environment variables over the
// config file.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix("JSONLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".jsonlint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := config{
		schema:     v.GetString("schema"),
		jobs:       v.GetInt("jobs"),
		maxNodes:   v.GetInt("max-schema-nodes"),
		verbose:    v.GetBool("verbose"),
		cpuProfile: v.GetString("cpuprofile"),
		memProfile: v.GetString("memprofile"),
	}
	if cfg.schema == "" {
		return config{}, usageError{errors.New("--schema is required")}
	}
	if cfg.jobs < 1 {
		return config{}, usageError{fmt.Errorf("--jobs must be at least 1, got %d", cfg.jobs)}
	}
	if cfg.maxNodes < 0 {
		return config{}, usageError{fmt.Errorf("--max-schema-nodes must be >= 0, got %d", cfg.maxNodes)}
	}
	var err error
	if cfg.format, err = jsonschema.ParseFormat(v.GetString("format")); err != nil {
		return config{}, usageError{err}
	}
	if cfg.output, err = parseOutputFormat(v.GetString("output")); err != nil {
		return config{}, usageError{err}
	}
	if cfg.color, err = parseColorMode(v.GetString("color")); err != nil {
		return config{}, usageError{err}
	}
	return cfg, nil
}
