package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ythistory/config"
	"ythistory/internal/auth"
	"ythistory/internal/logger"
	"ythistory/pipeline"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	command := args[0]
	switch command {
	case "recent":
		return cmdRecent(args[1:], stdout, stderr)
	case "transcripts":
		return cmdTranscripts(ctx, args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		// A bare path lists recent history
		return cmdRecent(args, stdout, stderr)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `ythistory - YouTube watch history tools

Usage:
  ythistory recent <watch-history.json>   List videos watched in the last 7 days
  ythistory <watch-history.json>          Same as recent
  ythistory transcripts [flags]           Save transcripts of videos watched yesterday
  ythistory help                          Show this help message

Examples:
  ythistory ~/Takeout/YouTube/history/watch-history.json
  ythistory transcripts
  ythistory transcripts -out yesterday.txt -lang de

Configuration is read from ythistory.yaml, ythistory.yml or ythistory.json in
the working directory or ~/.config/ythistory, then from YTHISTORY_* variables.

For help on specific command: ythistory <command> -h
`)
}

// loadRuntime loads configuration and the run logger.
func loadRuntime(stderr io.Writer) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewWithWriter(stderr, cfg.LogLevel).ForRun()
	log.SetDefault()
	return cfg, log, nil
}

func cmdRecent(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("recent", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ythistory recent <watch-history.json>\n\n")
		fmt.Fprintf(stderr, "List YouTube videos watched in the last 7 days from a Google Takeout export.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	argv := fs.Args()
	if len(argv) != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one watch-history path\n")
		fs.Usage()
		return exitUsage
	}

	// The listing uses no live-flow settings, so a bad config only warns.
	_, log, err := loadRuntime(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: ignoring config: %v\n", err)
		log = logger.NewWithWriter(stderr, config.DefaultConfig().LogLevel).ForRun()
	}

	if _, err := pipeline.Recent(stdout, argv[0], time.Now, log); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func cmdTranscripts(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("transcripts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "Output file (default from config: transcripts_yesterday.txt)")
	secrets := fs.String("secrets", "", "OAuth client secret file (default from config: client_secret.json)")
	lang := fs.String("lang", "", "Caption language (default from config: en)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ythistory transcripts [flags]\n\n")
		fmt.Fprintf(stderr, "Save the transcripts of every video watched yesterday (UTC) to one file.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "Error: unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return exitUsage
	}

	cfg, log, err := loadRuntime(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitError
	}
	if *out != "" {
		cfg.Output = *out
	}
	if *secrets != "" {
		cfg.ClientSecrets = *secrets
	}
	if *lang != "" {
		cfg.Language = *lang
	}

	session, err := auth.Authenticate(ctx, cfg.ClientSecrets, stdin, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error authenticating: %v\n", err)
		return exitError
	}

	live, err := pipeline.NewLiveFromConfig(ctx, cfg, session, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer live.Close()

	fmt.Fprintf(stderr, "Fetching watch history...\n")
	n, err := live.Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stdout, "Saved %d transcripts to %s\n", n, cfg.Output)
	return exitOK
}
