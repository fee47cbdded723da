// Package relay sends one prompt to a completion provider and appends the
// outcome, success or failure, to a file or the console.
package relay

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/HerbHall/promptrelay/internal/journal"
	"github.com/HerbHall/promptrelay/pkg/llm"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// SourceKind says how Source.Value is interpreted.
type SourceKind string

const (
	SourceText SourceKind = "text"
	SourceFile SourceKind = "file"
)

// Source is the prompt input: literal text or a path whose contents are
// the prompt.
type Source struct {
	Kind  SourceKind
	Value string
}

// TextSource returns a Source carrying literal prompt text.
func TextSource(prompt string) Source {
	return Source{Kind: SourceText, Value: prompt}
}

// FileSource returns a Source that reads the prompt from path.
func FileSource(path string) Source {
	return Source{Kind: SourceFile, Value: path}
}

// Status is the terminal state of a relay.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the single result of a relay. Text is set on success;
// Kind and Message are set on failure.
type Outcome struct {
	ID      string
	Status  Status
	Text    string
	Kind    Kind
	Message string
	Model   string
}

// Succeeded reports whether the outcome carries a completion.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

func failed(kind Kind, err error) Outcome {
	return Outcome{Status: StatusFailed, Kind: kind, Message: err.Error()}
}

// Journal records outcomes. Implemented by *journal.Store.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Option configures a Relay.
type Option func(*Relay)

// WithFs sets the filesystem used for prompt files and sink files.
func WithFs(fs afero.Fs) Option {
	return func(r *Relay) { r.fs = fs }
}

// WithConsole sets the writer used for console targets.
func WithConsole(w io.Writer) Option {
	return func(r *Relay) { r.console = w }
}

// WithFormat sets the sink block format.
func WithFormat(f Format) Option {
	return func(r *Relay) { r.format = f }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(r *Relay) { r.model = model }
}

// WithMaxTokens sets the completion token budget.
func WithMaxTokens(n int) Option {
	return func(r *Relay) { r.maxTokens = n }
}

// WithTimeout caps the provider call. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(r *Relay) { r.timeout = d }
}

// WithProviderName labels metrics and journal entries.
func WithProviderName(name string) Option {
	return func(r *Relay) { r.providerName = name }
}

// WithJournal records every outcome in j.
func WithJournal(j Journal) Option {
	return func(r *Relay) { r.journal = j }
}

// WithMetrics records outcome counters and request durations in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Relay) { r.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Relay) { r.logger = l }
}

// Relay performs prompt relays against one provider.
type Relay struct {
	provider     llm.Provider
	providerName string
	model        string
	maxTokens    int
	timeout      time.Duration
	fs           afero.Fs
	console      io.Writer
	format       Format
	journal      Journal
	metrics      *Metrics
	logger       *zap.Logger
	now          func() time.Time
}

// New creates a Relay backed by provider.
func New(provider llm.Provider, opts ...Option) *Relay {
	r := &Relay{
		provider:  provider,
		maxTokens: llm.DefaultMaxTokens,
		fs:        afero.NewOsFs(),
		console:   os.Stdout,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays the prompt from src and appends the outcome to target, or
// prints it when target is "console" or "-". A failed relay is still
// written and returned as an Outcome; the error return is non-nil only
// when the outcome could not be written.
func (r *Relay) Run(ctx context.Context, src Source, target string) (Outcome, error) {
	id := uuid.NewString()
	logger := r.logger.With(
		zap.String("relay_id", id),
		zap.String("source", string(src.Kind)),
		zap.String("target", target),
	)

	start := r.now()
	out := r.complete(ctx, src, logger)
	elapsed := r.now().Sub(start)
	out.ID = id

	if err := r.write(target, r.format.Render(out)); err != nil {
		logger.Error("failed to write outcome", zap.Error(err))
		return out, fmt.Errorf("write outcome: %w", err)
	}

	if out.Succeeded() {
		logger.Info("relay succeeded",
			zap.String("model", out.Model),
			zap.Int("response_bytes", len(out.Text)),
			zap.Duration("elapsed", elapsed),
		)
	} else {
		logger.Warn("relay failed",
			zap.String("kind", string(out.Kind)),
			zap.String("message", out.Message),
			zap.Duration("elapsed", elapsed),
		)
	}

	r.metrics.observe(r.providerName, out, elapsed)
	r.record(ctx, src, target, out, start, logger)

	return out, nil
}

// complete reads the prompt and performs the single provider call.
// The prompt is fully read before the call starts.
func (r *Relay) complete(ctx context.Context, src Source, logger *zap.Logger) Outcome {
	prompt, err := r.readPrompt(src)
	if err != nil {
		return failed(KindFileAccess, err)
	}

	opts := []llm.CallOption{llm.WithMaxTokens(r.maxTokens)}
	if r.model != "" {
		opts = append(opts, llm.WithModel(r.model))
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger.Debug("sending prompt", zap.Int("prompt_bytes", len(prompt)))

	resp, err := r.provider.Generate(ctx, prompt, opts...)
	if err != nil {
		return failed(classify(err), err)
	}
	if resp == nil {
		return failed(KindMalformedResponse, ErrEmptyResponse)
	}

	return Outcome{
		Status: StatusSucceeded,
		Text:   strings.TrimSpace(resp.Content),
		Model:  resp.Model,
	}
}

func (r *Relay) readPrompt(src Source) (string, error) {
	switch src.Kind {
	case SourceText, "":
		return src.Value, nil
	case SourceFile:
		data, err := afero.ReadFile(r.fs, src.Value)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown prompt source %q", src.Kind)
	}
}

func (r *Relay) write(target, block string) error {
	if IsConsole(target) {
		_, err := io.WriteString(r.console, block)
		return err
	}
	return appendFile(r.fs, target, block)
}

// record writes the outcome to the journal. Journal failures are logged
// and never change the outcome.
func (r *Relay) record(ctx context.Context, src Source, target string, out Outcome, start time.Time, logger *zap.Logger) {
	if r.journal == nil {
		return
	}

	e := journal.Entry{
		ID:         out.ID,
		CreatedAt:  start.UTC(),
		Provider:   r.providerName,
		Model:      out.Model,
		SourceKind: string(src.Kind),
		Target:     target,
		Status:     string(out.Status),
		Kind:       string(out.Kind),
		Message:    out.Message,
		Text:       out.Text,
	}
	if src.Kind == SourceFile {
		e.PromptPath = src.Value
	}
	if e.Model == "" {
		e.Model = r.model
	}

	if err := r.journal.Record(ctx, e); err != nil {
		logger.Warn("failed to journal outcome", zap.Error(err))
	}
}
