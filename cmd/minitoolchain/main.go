package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/danmuck/minitoolchain/internal/backends"
	"github.com/danmuck/minitoolchain/internal/config"
	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/danmuck/minitoolchain/internal/logging"
	"github.com/danmuck/minitoolchain/internal/pipeline"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	logging.ConfigureRuntime()
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, pipeline.Default()))
}

func execute(args []string, stdout, stderr io.Writer, p *pipeline.Pipeline) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "run":
		err = runCommand(args[1:], stdout, stderr, p)
	case "backends":
		err = backendsCommand(args[1:], stdout, stderr, p)
	case "init":
		err = initCommand(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "minitoolchain: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		fmt.Fprintf(stderr, "minitoolchain: %v\n", err)
		return exitError
	}
}

func runCommand(args []string, stdout, stderr io.Writer, p *pipeline.Pipeline) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	backend := fs.String("backend", "", "backend name (e.g. sim)")
	shots := fs.String("shots", "1000", "number of shots (positive int)")
	circuit := fs.String("circuit", "", "circuit spec placeholder (string)")
	mitigationName := fs.String("mitigation", "none", "mitigation name (none|toy)")
	calibrationID := fs.String("calibration-id", "", "calibration context identifier (optional)")
	format := fs.String("format", config.FormatJSON, "output format (json|yaml)")
	profilePath := fs.String("config", "", "TOML run profile; flags override its values")
	tags := map[string]string{}
	fs.Func("tag", "key=value tag (repeatable)", func(raw string) error {
		k, v, err := config.ParseTag(raw)
		if err != nil {
			return err
		}
		tags[k] = v
		return nil
	})
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "minitoolchain: unexpected arguments: %v\n", fs.Args())
		return errUsage
	}

	profile := config.DefaultRunProfile()
	if *profilePath != "" {
		loaded, err := config.LoadRunProfile(*profilePath, profile)
		if err != nil {
			return err
		}
		profile = loaded
	}

	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			profile.Options.Backend = *backend
		case "shots":
			n, err := contracts.ParseShots(*shots)
			if err != nil {
				visitErr = err
				return
			}
			profile.Options.Shots = n
		case "circuit":
			profile.Options.Circuit = *circuit
		case "mitigation":
			profile.Options.Mitigation = *mitigationName
		case "calibration-id":
			profile.Options.CalibrationID = contracts.StringPtr(*calibrationID)
		case "format":
			profile.Format = *format
		case "tag":
			if profile.Options.Tags == nil {
				profile.Options.Tags = map[string]string{}
			}
			maps.Copy(profile.Options.Tags, tags)
		}
	})
	if visitErr != nil {
		return visitErr
	}

	outputFormat, err := config.ParseFormat(profile.Format)
	if err != nil {
		return err
	}

	outcome, err := p.Run(profile.Options)
	if err != nil {
		return err
	}
	rendered, err := render(outcome.Result, outputFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, rendered)
	return err
}

func render(res contracts.Result, format string) (string, error) {
	if format == config.FormatYAML {
		return res.ToYAML()
	}
	return res.ToJSON()
}

type catalog struct {
	Backends   []backends.Capabilities `json:"backends"`
	Mitigators []string                `json:"mitigators"`
}

func backendsCommand(args []string, stdout, stderr io.Writer, p *pipeline.Pipeline) error {
	fs := flag.NewFlagSet("backends", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}

	out := catalog{
		Backends:   p.Backends().Capabilities(backends.Deps{}),
		Mitigators: p.Mitigators().Names(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backends: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

func initCommand(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "minitoolchain.toml", "output path for the run profile template")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "wrote run profile template to %s\n", *output)
	return err
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  minitoolchain run --backend <name> --circuit <string> [--shots N] [--mitigation none|toy] [--calibration-id ID] [--tag k=v] [--config profile.toml] [--format json|yaml]")
	fmt.Fprintln(w, "  minitoolchain backends")
	fmt.Fprintln(w, "  minitoolchain init [--output path] [--force]")
}
