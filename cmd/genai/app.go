package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/genai/pkg/client"
	"github.com/germanamz/genai/pkg/config"
	"github.com/germanamz/genai/pkg/request"
	"github.com/germanamz/genai/pkg/storage"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

const apiKeyEnv = "GEMINI_API_KEY"

var errMissingAPIKey = errors.New("missing API key: set -api-key, api_key in the config file, or $" + apiKeyEnv)

// app carries what every command needs.
type app struct {
	cfg         config.Config
	client      *client.GoogleGenerativeAI
	log         *slog.Logger
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

func newApp(g globalFlags, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	if err := loadDotEnv(g.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(g.configPath, g.configPath == defaultConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key := resolveAPIKey(g.apiKey, cfg.APIKey)
	if key == "" {
		return nil, errMissingAPIKey
	}

	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	requester := request.New(request.WithLogger(log))

	return &app{
		cfg:         cfg,
		client:      client.New(key, client.WithRequester(requester)),
		log:         log,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: isTerminal(stdin) && isTerminal(stdout),
	}, nil
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolveAPIKey picks the flag, then the config file, then the environment.
func resolveAPIKey(flagKey, configKey string) string {
	for _, k := range []string{flagKey, configKey, os.Getenv(apiKeyEnv)} {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}

	return ""
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// readPrompt joins positional arguments. Without arguments it asks for a
// prompt on a terminal, or reads stdin otherwise.
func (a *app) readPrompt(args []string, title string) (string, error) {
	if p := strings.TrimSpace(strings.Join(args, " ")); p != "" {
		return p, nil
	}

	if a.interactive {
		var p string
		err := huh.NewForm(huh.NewGroup(
			huh.NewText().Title(title).Value(&p).Validate(notBlank),
		)).Run()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(p), nil
	}

	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}

	p := strings.TrimSpace(string(data))
	if p == "" {
		return "", errNoPrompt
	}

	return p, nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errNoPrompt
	}
	return nil
}

// sink resolves where media goes: the -out flag, then the config's S3
// bucket, then the config's directory.
func (a *app) sink(ctx context.Context, out string) (storage.Sink, error) {
	if out != "" {
		return storage.Open(ctx, out, a.cfg.Output.Region)
	}

	if a.cfg.Output.S3Bucket != "" {
		return storage.NewS3(ctx, a.cfg.Output.S3Bucket, a.cfg.Output.S3Prefix, a.cfg.Output.Region)
	}

	return storage.NewDir(a.cfg.Output.Dir), nil
}

func (a *app) printLocations(locs []string) {
	for _, l := range locs {
		if a.interactive {
			fmt.Fprintln(a.stdout, successStyle.Render("saved ")+l)
			continue
		}
		fmt.Fprintln(a.stdout, l)
	}
}
