package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HerbHall/promptrelay/internal/llm"
	"github.com/spf13/cobra"
)

const defaultPingTimeout = 10 * time.Second

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured provider is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			provider, err := llm.NewProvider(s.LLM, s.APIKey, a.logger.Named("llm"))
			if err != nil {
				return err
			}

			timeout := s.Relay.Timeout
			if timeout <= 0 {
				timeout = defaultPingTimeout
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			h, err := llm.Check(ctx, provider, a.logger.Named("llm"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "provider: %s\n", s.LLM.Provider)
			fmt.Fprintf(out, "model:    %s\n", modelFor(a))
			fmt.Fprintf(out, "status:   %s\n", h.Status)
			if h.Message != "" {
				fmt.Fprintf(out, "message:  %s\n", firstLine(h.Message))
			}
			if len(h.Models) > 0 {
				fmt.Fprintf(out, "models:   %s\n", strings.Join(h.Models, ", "))
			}

			if h.Status == "unhealthy" {
				return fmt.Errorf("provider %s is unreachable", s.LLM.Provider)
			}
			return nil
		},
	}
}

func modelFor(a *app) string {
	if m := a.settings.Relay.Model; m != "" {
		return m
	}
	return a.settings.LLM.Model()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
