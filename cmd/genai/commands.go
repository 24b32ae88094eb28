package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/models/model"
	"github.com/germanamz/genai/pkg/models/text"
	"github.com/germanamz/genai/pkg/storage"
	"github.com/germanamz/genai/pkg/tools/gentools"
	"github.com/germanamz/genai/pkg/tools/mcpserver"
	"github.com/germanamz/genai/pkg/tools/toolbox"
)

func (a *app) flagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: genai %s [flags] [prompt]\n\n%s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

func (a *app) runText(ctx context.Context, args []string) error {
	fs := a.flagSet("text", "Generate text from a prompt.")
	modelName := fs.String("model", a.cfg.Models.Text, "model name")
	raw := fs.Bool("raw", false, "print the reply without markdown rendering")
	count := fs.Bool("count", false, "count prompt tokens instead of generating")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prompt, err := a.readPrompt(fs.Args(), "What should the model write?")
	if err != nil {
		return err
	}

	m, err := a.client.GenerativeModel(text.Params{Model: *modelName}, a.cfg.RequestOptions())
	if err != nil {
		return err
	}

	if *count {
		resp, err := withProgress(ctx, a, "Counting tokens...", func(ctx context.Context) (*content.CountTokensResponse, error) {
			return m.CountTokens(ctx, content.Prompt(prompt))
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, resp.TotalTokens)
		return nil
	}

	resp, err := withProgress(ctx, a, "Generating...", func(ctx context.Context) (*content.GenerateContentResponse, error) {
		return m.GenerateContent(ctx, content.Prompt(prompt))
	})
	if err != nil {
		return err
	}

	if u := resp.UsageMetadata; u != nil {
		a.log.Debug("usage", "model", m.ID(), "prompt_tokens", u.PromptTokenCount, "output_tokens", u.CandidatesTokenCount)
	}

	reply, err := resp.Text()
	if err != nil {
		return err
	}

	if a.interactive && !*raw {
		reply = renderMarkdown(reply, terminalWidth(a.stdout))
	}
	fmt.Fprintln(a.stdout, reply)

	return nil
}

func (a *app) runImage(ctx context.Context, args []string) error {
	fs := a.flagSet("image", "Generate images from a description.")
	modelName := fs.String("model", a.cfg.Models.Image, "model name")
	n := fs.Int("n", 1, "number of images")
	aspect := fs.String("aspect-ratio", "", "aspect ratio, e.g. 16:9")
	out := fs.String("out", "", "output directory or s3://bucket/prefix (default from config)")
	name := fs.String("name", "image", "file name stem")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", *n)
	}

	prompt, err := a.readPrompt(fs.Args(), "Describe the image")
	if err != nil {
		return err
	}

	sink, err := a.sink(ctx, *out)
	if err != nil {
		return err
	}

	m, err := a.client.ImageGenerationModel(model.Params{Model: *modelName}, a.cfg.RequestOptions())
	if err != nil {
		return err
	}

	resp, err := withProgress(ctx, a, "Painting...", func(ctx context.Context) (*content.ImageGenerationResponse, error) {
		return m.GenerateImages(ctx, content.ImageGenerationRequest{
			Prompt:         prompt,
			NumberOfImages: *n,
			AspectRatio:    *aspect,
		})
	})
	if err != nil {
		return err
	}

	locs, err := storage.Save(ctx, sink, *name, resp.Images)
	a.printLocations(locs)

	return err
}

func (a *app) runSpeech(ctx context.Context, args []string) error {
	fs := a.flagSet("speech", "Synthesize speech from text.")
	modelName := fs.String("model", a.cfg.Models.Speech, "model name")
	voice := fs.String("voice", "", "voice name")
	lang := fs.String("language", "", "BCP-47 language code, e.g. en-US")
	out := fs.String("out", "", "output directory or s3://bucket/prefix (default from config)")
	name := fs.String("name", "speech", "file name stem")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prompt, err := a.readPrompt(fs.Args(), "What should be said?")
	if err != nil {
		return err
	}

	sink, err := a.sink(ctx, *out)
	if err != nil {
		return err
	}

	m, err := a.client.SpeechGenerationModel(model.Params{Model: *modelName}, a.cfg.RequestOptions())
	if err != nil {
		return err
	}

	resp, err := withProgress(ctx, a, "Recording...", func(ctx context.Context) (*content.SpeechGenerationResponse, error) {
		return m.GenerateSpeech(ctx, content.SpeechGenerationRequest{
			Prompt:       prompt,
			Voice:        *voice,
			LanguageCode: *lang,
		})
	})
	if err != nil {
		return err
	}

	locs, err := storage.Save(ctx, sink, *name, []content.GeneratedMedia{resp.GeneratedMedia})
	a.printLocations(locs)

	return err
}

func (a *app) runMCP(ctx context.Context, args []string) error {
	fs := a.flagSet("mcp", "Serve the generation tools over MCP on stdin/stdout.")
	out := fs.String("out", "", "where generated media is stored (default from config)")
	only := fs.String("tools", "", "comma-separated tool names to serve (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sink, err := a.sink(ctx, *out)
	if err != nil {
		return err
	}

	opts := a.cfg.RequestOptions()

	tm, err := a.client.GenerativeModel(text.Params{Model: a.cfg.Models.Text}, opts)
	if err != nil {
		return err
	}
	im, err := a.client.ImageGenerationModel(model.Params{Model: a.cfg.Models.Image}, opts)
	if err != nil {
		return err
	}
	sm, err := a.client.SpeechGenerationModel(model.Params{Model: a.cfg.Models.Speech}, opts)
	if err != nil {
		return err
	}

	tb := toolbox.New(gentools.Tools(gentools.Generators{Text: tm, Image: im, Speech: sm, Sink: sink})...)
	if *only != "" {
		if tb, err = tb.Select(strings.Split(*only, ",")...); err != nil {
			return err
		}
	}

	srv := mcpserver.New("genai", version, mcpserver.WithLogger(a.log))
	srv.RegisterToolBox(tb)

	return srv.Serve(ctx, a.stdin, a.stdout)
}
