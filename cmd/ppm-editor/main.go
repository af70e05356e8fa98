package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ppm-editor/internal/config"
	"github.com/ironsheep/ppm-editor/internal/pipeline"
	"github.com/ironsheep/ppm-editor/internal/ppm"
	"github.com/ironsheep/ppm-editor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "ppm-editor: %v\n", err)
		return 2
	}

	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "ppm-editor %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "blur":
		return runEdit(pipeline.OpBlur, args[1:], cfg, stdout, stderr)
	case "invert":
		return runEdit(pipeline.OpInvert, args[1:], cfg, stdout, stderr)
	case "info":
		return runInfo(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], cfg, stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "ppm-editor: unknown command %q\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "ppm-editor - blur and invert binary PPM (P6) images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ppm-editor blur [-radius N] [-workers N] [-remainder last-band|drop] [-o out.ppm] [-preview out.png] <file.ppm>")
	fmt.Fprintln(w, "  ppm-editor invert [-o out.ppm] [-preview out.png] <file.ppm>")
	fmt.Fprintln(w, "  ppm-editor info <file.ppm>")
	fmt.Fprintln(w, "  ppm-editor serve")
	fmt.Fprintln(w, "  ppm-editor --version | --help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without -o the input file is overwritten.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=1            Blur radius\n", config.EnvRadius)
	fmt.Fprintf(w, "  %s=4           Parallel workers\n", config.EnvWorkers)
	fmt.Fprintf(w, "  %s=last-band Leftover row handling\n", config.EnvRemainder)
	fmt.Fprintf(w, "  %s=debug       Log level\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s=256   Max preview width\n", config.EnvPreviewWidth)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'serve' speaks MCP (JSON-RPC 2.0) over stdin/stdout.")
}

func runEdit(op pipeline.Operation, args []string, cfg config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(string(op), flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "output path (default: overwrite input)")
	preview := fs.String("preview", "", "also write a PNG preview to this path")
	fs.IntVar(&cfg.PreviewWidth, "preview-width", cfg.PreviewWidth, "maximum preview width in pixels (0 = full size)")
	debug := fs.Bool("debug", false, "enable debug logging")
	if op == pipeline.OpBlur {
		fs.IntVar(&cfg.Radius, "radius", cfg.Radius, "blur radius; window is (2r+1)x(2r+1)")
		fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel row bands")
		fs.StringVar(&cfg.Remainder, "remainder", cfg.Remainder, "leftover rows: last-band or drop")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "ppm-editor %s: expected exactly one input file\n", op)
		return 2
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "ppm-editor %s: %v\n", op, err)
		return 2
	}

	logger := initLogger(cfg, stderr)
	policy, _ := cfg.RemainderPolicy()

	editor := pipeline.New(logger)
	res, err := editor.Edit(pipeline.Request{
		Input:        fs.Arg(0),
		Output:       *output,
		Operation:    op,
		Radius:       cfg.Radius,
		Workers:      cfg.Workers,
		Remainder:    policy,
		PreviewPath:  *preview,
		PreviewWidth: cfg.PreviewWidth,
	})
	if err != nil {
		logger.WithError(err).WithField("operation", op).Debug("Edit failed")
		fmt.Fprintf(stderr, "ppm-editor %s: %v\n", op, err)
		return 1
	}

	logger.WithFields(logrus.Fields{
		"operation":  res.Operation,
		"output":     res.Output,
		"mean_after": res.After.MeanHex,
	}).Info("Edit complete")
	fmt.Fprintf(stdout, "%s: %s -> %s (%dx%d, mean %s -> %s) in %s\n",
		res.Operation, res.Input, res.Output, res.Width, res.Height,
		res.Before.MeanHex, res.After.MeanHex, res.Elapsed.Round(time.Microsecond))
	return 0
}

func runInfo(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "ppm-editor info: expected exactly one input file")
		return 2
	}

	info, err := ppm.ReadInfo(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "ppm-editor info: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		fmt.Fprintf(stderr, "ppm-editor info: %v\n", err)
		return 1
	}
	return 0
}

func runServe(args []string, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	// stdout carries the protocol; logs go to stderr.
	logger := initLogger(cfg, stderr)
	logger.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
		"built":   BuildTime,
	}).Debug("Starting MCP server")

	server.ServerVersion = Version
	srv := server.New(cfg, logger)
	if err := srv.Run(stdin, stdout); err != nil {
		logger.WithError(err).Error("Server error")
		return 1
	}
	return 0
}

// initLogger builds a logger at the configured level. Debug output is human
// readable text; everything else is JSON.
func initLogger(cfg config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := cfg.Level()
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if level >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
