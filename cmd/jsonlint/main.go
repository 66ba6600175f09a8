package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacoelho/jsonschema"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// usageError marks bad invocations, which exit with exitUsage.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	code := exitValid
	cmd := newRootCommand(stdout, stderr, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return exitInvalid
		}
		var usage usageError
		if errors.As(err, &usage) {
			if writeErr := writeln(stderr, cmd.UsageString()); writeErr != nil {
				return exitInvalid
			}
			return exitUsage
		}
		return exitInvalid
	}
	return code
}

func newRootCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "jsonlint --schema <schema.json> <document>...",
		Short: "Validate JSON and YAML documents against a JSON Schema",
		Long: `jsonlint compiles a JSON Schema (draft-04 keywords) and validates each
document against it, reporting every violation with its JSON pointer.

Settings are read from flags, JSONLINT_* environment variables and an
optional .jsonlint.yaml file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError{errors.New("at least one document argument is required")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			return execute(cfg, args, stdout, stderr, code)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	registerFlags(cmd)
	return cmd
}

func execute(cfg config, documents []string, stdout, stderr io.Writer, code *int) error {
	if cfg.cpuProfile != "" {
		stopCPUProfile, err := startCPUProfile(cfg.cpuProfile)
		if err != nil {
			return err
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", err)
			}
		}()
	}
	if cfg.memProfile != "" {
		defer func() {
			if err := writeMemProfile(cfg.memProfile); err != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", err)
			}
		}()
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := jsonschema.NewLoadOptions().
		WithLogger(logger).
		WithFormat(cfg.format).
		WithMaxSchemaNodes(cfg.maxNodes)
	schema, err := jsonschema.LoadFileWithOptions(cfg.schema, opts)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	results := validateAll(schema, documents, cfg.jobs, logger)
	r := newReporter(stdout, cfg.output, cfg.color)
	if err := r.write(results); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	for _, res := range results {
		if !res.valid() {
			*code = exitInvalid
			break
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return nil, errors.Join(fmt.Errorf("start cpu profile %s: %w", path, err), f.Close())
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Join(fmt.Errorf("write mem profile %s: %w", path, err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
