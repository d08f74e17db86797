package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
)

// app is built once per invocation by the root command's pre-run hook.
var app *cli.App

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing runs deterministic single-tape Turing machines",
	Long: `Turing runs the machines of its built-in catalog from the terminal,
over HTTP or as an MCP server, and keeps bounded runs so they can be resumed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err = cli.NewApp(cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to the config file (default turing.yaml if present)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("store", "", "Run store driver: memory, file or redis")
	flags.String("store-dir", "", "Directory of the file run store")
	flags.String("redis-addr", "", "Address of the redis run store")
}

// loadConfig reads the config file and applies the flags that were set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	var (
		cfg *config.Config
		err error
	)
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"log-level", &cfg.Log.Level},
		{"log-file", &cfg.Log.File},
		{"store", &cfg.Store.Driver},
		{"store-dir", &cfg.Store.Dir},
		{"redis-addr", &cfg.Store.Redis.Addr},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst, _ = flags.GetString(o.flag)
		}
	}
	return cfg, nil
}
