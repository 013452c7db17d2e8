package usecase

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"resume-studio/internal/domain"
	"resume-studio/internal/metrics"
	"resume-studio/pkg/infrastructure"

	"go.uber.org/zap"
)

// Renderer evaluates template markup against a flattened projection.
type Renderer interface {
	Render(source string, data map[string]interface{}) (string, error)
}

// Output is one render pass: the visible preview and its print-width twin,
// both produced from the same snapshot.
type Output struct {
	Key        uint64 `json:"key"`
	TemplateID string `json:"template_id"`
	Visible    string `json:"visible"`
	Print      string `json:"print"`
	Error      string `json:"error,omitempty"`
}

type Previewer struct {
	renderer Renderer
	logger   *zap.Logger
}

func NewPreviewer(renderer Renderer, logger *zap.Logger) *Previewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Previewer{renderer: renderer, logger: logger}
}

// Render flattens doc once and renders tpl twice against it. It never
// fails: missing markup and engine errors come back as inline error
// blocks, with the message also set on Output.Error.
func (p *Previewer) Render(key uint64, tpl *domain.Template, doc interface{}) Output {
	out := Output{Key: key}
	if tpl != nil {
		out.TemplateID = tpl.ID
	}
	if tpl == nil || strings.TrimSpace(tpl.HTML) == "" {
		return p.Failure(out, "No template markup available")
	}

	start := time.Now()
	data := Flatten(DocumentMap(doc))

	visible, err := p.evaluate(tpl, data, "visible")
	if err != nil {
		out.Error = err.Error()
		visible = errorBlock(err)
	}
	printCopy, err := p.evaluate(tpl, data, "print")
	if err != nil {
		out.Error = err.Error()
		printCopy = errorBlock(err)
	}
	metrics.RenderDuration.WithLabelValues(tpl.ID).Observe(time.Since(start).Seconds())

	out.Visible = wrapVisible(key, visible)
	out.Print = wrapPrint(key, printCopy)
	return out
}

// Failure fills both outputs with a plain inline message.
func (p *Previewer) Failure(out Output, message string) Output {
	block := fmt.Sprintf(`<div class="render-error" role="alert">%s</div>`, html.EscapeString(message))
	out.Error = message
	out.Visible = wrapVisible(out.Key, block)
	out.Print = wrapPrint(out.Key, block)
	return out
}

func (p *Previewer) evaluate(tpl *domain.Template, data map[string]interface{}, output string) (string, error) {
	res, err := p.renderer.Render(tpl.HTML, data)
	if err != nil {
		fields := []zap.Field{
			zap.String("template", tpl.ID),
			zap.String("output", output),
			zap.Error(err),
		}
		var rerr *infrastructure.RenderError
		if errors.As(err, &rerr) {
			fields = append(fields, zap.String("stack", rerr.Stack))
		}
		p.logger.Error("template render failed", fields...)
		metrics.Renders.WithLabelValues(output, "error").Inc()
		return "", err
	}
	metrics.Renders.WithLabelValues(output, "ok").Inc()
	return res, nil
}

func errorBlock(err error) string {
	var b strings.Builder
	b.WriteString(`<div class="render-error" role="alert"><strong>Template error</strong><pre>`)
	b.WriteString(html.EscapeString(err.Error()))
	b.WriteString(`</pre>`)
	var rerr *infrastructure.RenderError
	if errors.As(err, &rerr) && rerr.Stack != "" {
		b.WriteString(`<pre class="render-error-stack">`)
		b.WriteString(html.EscapeString(rerr.Stack))
		b.WriteString(`</pre>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func wrapVisible(key uint64, body string) string {
	return fmt.Sprintf(`<div class="resume-preview" data-render-key="%d">%s</div>`, key, body)
}

func wrapPrint(key uint64, body string) string {
	return fmt.Sprintf(`<div class="resume-print" data-render-key="%d" aria-hidden="true" style="position:absolute;left:-10000px;top:0;width:210mm">%s</div>`, key, body)
}
