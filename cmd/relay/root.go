package main

import (
	"fmt"

	"github.com/HerbHall/promptrelay/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	configPath string

	v        *viper.Viper
	settings config.Settings
	logger   *zap.Logger
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"provider":         "llm.provider",
	"model":            "relay.model",
	"timeout":          "relay.timeout",
	"journal":          "journal.path",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"trailer":          "relay.trailer",
	"max-tokens":       "relay.max_tokens",
	"metrics-textfile": "metrics.textfile",
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	opts := &relayOptions{}

	root := &cobra.Command{
		Use:   "relay [flags] <prompt> <target>",
		Short: "Send a prompt to a completion API and append the response",
		Long: `relay sends one prompt to a text-completion API and appends the response,
or the error that prevented it, to <target> under a "ChatGPT Response:" header.

<prompt> is literal text, or a file path with --prompt-file.
<target> is a file path, or "console" / "-" to print to stdout.

The OpenAI credential is read from OPENAI_API_KEY, then RELAY_OPENAI_API_KEY,
then openai.api_key in the config file. A missing credential is a startup
error: relay exits non-zero and writes nothing to <target>.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRelay(cmd, opts, args[0], args[1])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to configuration file (default: relay.yaml on the search path)")
	pf.String("provider", "", "completion provider: openai or ollama")
	pf.String("model", "", "model override for the selected provider")
	pf.Duration("timeout", 0, "cap on the completion request (0 for no cap)")
	pf.String("journal", "", "path to the SQLite journal (empty disables journaling)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: json or console")

	addRelayFlags(root, opts)

	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newPingCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// init loads configuration, applies flag overrides and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	v, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	s, err := config.Decode(v)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(v)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if f := v.ConfigFileUsed(); f != "" {
		logger.Debug("configuration loaded", zap.String("component", "config"), zap.String("source", f))
	} else {
		logger.Debug("no configuration file found, using defaults", zap.String("component", "config"))
	}

	a.v, a.settings, a.logger = v, s, logger
	return nil
}

// bindFlags binds the flags present on fs. Subcommands do not carry every
// root flag, so missing ones are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
