package main

import (
	"fmt"

	"github.com/HerbHall/promptrelay/internal/journal"
	"github.com/HerbHall/promptrelay/internal/llm"
	"github.com/HerbHall/promptrelay/internal/relay"
	"github.com/HerbHall/promptrelay/internal/version"
	pkgllm "github.com/HerbHall/promptrelay/pkg/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type relayOptions struct {
	promptText bool
	promptFile bool
}

func addRelayFlags(cmd *cobra.Command, opts *relayOptions) {
	f := cmd.Flags()
	f.BoolVar(&opts.promptText, "prompt-text", false, "treat <prompt> as literal prompt text (default)")
	f.BoolVar(&opts.promptFile, "prompt-file", false, "treat <prompt> as a path whose contents are the prompt")
	f.Bool("trailer", false, `append a "User Response" line after a successful completion`)
	f.Int("max-tokens", pkgllm.DefaultMaxTokens, "completion token budget")
	f.String("metrics-textfile", "", "write Prometheus metrics for this run to the given file")
	cmd.MarkFlagsMutuallyExclusive("prompt-text", "prompt-file")
}

func (o *relayOptions) source(arg string) relay.Source {
	if o.promptFile {
		return relay.FileSource(arg)
	}
	return relay.TextSource(arg)
}

// runRelay performs one relay. A failed completion is written to the target
// and is not an error; only configuration and write failures are.
func (a *app) runRelay(cmd *cobra.Command, opts *relayOptions, prompt, target string) error {
	ctx := cmd.Context()
	s := a.settings

	provider, err := llm.NewProvider(s.LLM, s.APIKey, a.logger.Named("llm"))
	if err != nil {
		return err
	}

	relayOpts := []relay.Option{
		relay.WithConsole(cmd.OutOrStdout()),
		relay.WithFormat(relay.Format{Trailer: s.Relay.Trailer}),
		relay.WithMaxTokens(s.Relay.MaxTokens),
		relay.WithTimeout(s.Relay.Timeout),
		relay.WithProviderName(s.LLM.Provider),
		relay.WithModel(s.Relay.Model),
		relay.WithLogger(a.logger.Named("relay")),
	}

	if s.Journal.Path != "" {
		j, err := journal.Open(ctx, s.Journal.Path, version.Short())
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		relayOpts = append(relayOpts, relay.WithJournal(j))
	}

	var reg *prometheus.Registry
	if s.Metrics.Textfile != "" {
		reg = prometheus.NewRegistry()
		relayOpts = append(relayOpts, relay.WithMetrics(relay.NewMetrics(reg)))
	}

	if _, err := relay.New(provider, relayOpts...).Run(ctx, opts.source(prompt), target); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(s.Metrics.Textfile, reg); err != nil {
			a.logger.Warn("failed to write metrics textfile",
				zap.String("path", s.Metrics.Textfile), zap.Error(err))
		}
	}
	return nil
}
