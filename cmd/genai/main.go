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
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const defaultConfigPath = "genai.yaml"

var (
	errNoCommand = errors.New("no command given")
	errNoPrompt  = errors.New("no prompt given")
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	envFile    string
	apiKey     string
	verbose    bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("genai", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: genai [flags] <command> [command flags] [prompt]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n"+
			"  text    Generate text (or count tokens with -count)\n"+
			"  image   Generate images\n"+
			"  speech  Synthesize speech\n"+
			"  mcp     Serve generate_text, generate_image and generate_speech over MCP on stdio\n")
	}

	var g globalFlags
	fs.StringVar(&g.configPath, "config", defaultConfigPath, "path to configuration file (default file is optional)")
	fs.StringVar(&g.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&g.apiKey, "api-key", "", "API key (default: config api_key, then $GEMINI_API_KEY)")
	fs.BoolVar(&g.verbose, "verbose", false, "log requests at debug level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errNoCommand
	}

	cmd, cmdArgs := rest[0], rest[1:]

	var runCmd func(*app, context.Context, []string) error
	switch cmd {
	case "text":
		runCmd = (*app).runText
	case "image":
		runCmd = (*app).runImage
	case "speech":
		runCmd = (*app).runSpeech
	case "mcp":
		runCmd = (*app).runMCP
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	a, err := newApp(g, stdin, stdout, stderr)
	if err != nil {
		return err
	}

	return runCmd(a, ctx, cmdArgs)
}
