package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-studio/internal/adapter/templatestore"
	"resume-studio/internal/model"
	"resume-studio/internal/usecase"
	"resume-studio/pkg/helpers"
	infra "resume-studio/pkg/infrastructure"
	"resume-studio/templates"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// render writes the visible and print outputs of one resume file, for
// checking templates without running the server.
func main() {
	in := flag.String("in", "resume.json", "resume JSON file")
	source := flag.String("source", "legacy", "input shape: legacy or persisted")
	templateID := flag.String("template", templates.DefaultID, "template id")
	out := flag.String("out", filepath.Join("resume-data", "generated", "resume"), "output path without extension")
	flag.Parse()

	_ = godotenv.Load()
	logger := infra.NewLogger(os.Getenv("APP_ENV"))
	defer func() { _ = logger.Sync() }()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read resume: %v\n", err)
		os.Exit(2)
	}

	var doc *model.Document
	switch *source {
	case "legacy":
		doc = usecase.FromLegacyFlat(b)
	case "persisted":
		doc = usecase.FromPersistedRecord(json.RawMessage(b))
	default:
		fmt.Fprintf(os.Stderr, "unknown source %q\n", *source)
		os.Exit(2)
	}
	if res := model.Validate(doc); !res.IsValid {
		for _, e := range res.Errors {
			logger.Warn("validation", zap.String("field", e.Field), zap.String("message", e.Message))
		}
	}

	var store usecase.TemplateSource
	if u := os.Getenv("TEMPLATE_API_URL"); u != "" {
		store = templatestore.NewClient(u, templatestore.ClientOptions{Timeout: 10 * time.Second, Retries: 2}, logger)
	} else if store, err = templatestore.NewBuiltin(); err != nil {
		fmt.Fprintf(os.Stderr, "load templates: %v\n", err)
		os.Exit(2)
	}
	tpl, err := store.Get(context.Background(), *templateID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load template: %v\n", err)
		os.Exit(2)
	}

	previewer := usecase.NewPreviewer(infra.NewHandlebarsRenderer(helpers.NewSet()), logger)
	output := previewer.Render(1, tpl, doc)
	if output.Error != "" {
		fmt.Fprintf(os.Stderr, "render: %s\n", output.Error)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out dir: %v\n", err)
		os.Exit(2)
	}
	files := []struct {
		path  string
		body  string
		print bool
	}{
		{*out + ".html", output.Visible, false},
		{*out + ".print.html", output.Print, true},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(page(f.body, f.print)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", f.path, err)
			os.Exit(2)
		}
		fmt.Printf("wrote %s\n", f.path)
	}
}

// printStyle brings the off-screen print copy back into view for a
// standalone file.
const printStyle = `<style>@page{size:A4;margin:0}.resume-print{position:static!important;left:auto!important}</style>`

func page(body string, print bool) string {
	head := `<meta charset="utf-8"><title>Resume</title>`
	if print {
		head += printStyle
	}
	return "<!DOCTYPE html>\n<html><head>" + head + "</head><body>" + body + "</body></html>\n"
}
