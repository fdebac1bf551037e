package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/minimcp-servers/internal/app"
	"github.com/bobmcallan/minimcp-servers/internal/common"
	"github.com/bobmcallan/minimcp-servers/internal/servers"
	"github.com/bobmcallan/minimcp-servers/internal/tools"
)

// defaultConfigPaths are read when no --config flag is given. Missing files
// are skipped.
var defaultConfigPaths = []string{"minimcp.toml"}

type rootOptions struct {
	configPaths []string
	logLevel    string
}

// catalogue is the document printed by the tools command.
type catalogue struct {
	Server       string              `json:"server" yaml:"server"`
	Version      string              `json:"version" yaml:"version"`
	Instructions string              `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Tools        []*tools.Descriptor `json:"tools" yaml:"tools"`
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "minimcp",
		Short:         "Mini MCP tool servers",
		Long:          "minimcp serves small collections of utility functions as MCP tools over stdio.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringSliceVarP(&opts.configPaths, "config", "c", nil, "configuration file path (repeatable)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")

	root.AddCommand(serveCmd(opts))
	root.AddCommand(listCmd(opts))
	root.AddCommand(toolsCmd(opts))
	root.AddCommand(callCmd(opts))
	root.AddCommand(versionCmd())
	return root
}

// load reads config and applies flag overrides.
func (o *rootOptions) load() (*common.Config, error) {
	paths := o.configPaths
	if len(paths) == 0 {
		paths = defaultConfigPaths
	}
	cfg, err := common.LoadConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// variant resolves a variant name, applying the configured version override.
func variant(name string, cfg *common.Config) (servers.Variant, error) {
	v, ok := servers.Lookup(name)
	if !ok {
		return servers.Variant{}, fmt.Errorf("unknown server %q (available: %s)", name, strings.Join(servers.Names(), ", "))
	}
	if cfg.Server.Version != "" {
		v.Version = cfg.Server.Version
	}
	return v, nil
}

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "serve <server>",
		Short:     "Serve a tool server over stdio",
		Args:      cobra.ExactArgs(1),
		ValidArgs: servers.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			v, err := variant(args[0], cfg)
			if err != nil {
				return err
			}

			common.LoadVersionFromFile()
			logger := common.InitLogging(cfg.Logging)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, v, logger, cmd.InOrStdin(), cmd.OutOrStdout(), app.StdioOptions(cfg.Server, logger)...)
		},
	}
}

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available tool servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range servers.Names() {
				v, _ := variant(name, cfg)
				fmt.Fprintf(out, "%s\t%s\n", v.Name, v.Version)
			}
			return nil
		},
	}
}

func toolsCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tools <server>",
		Short: "Print the tool catalogue of a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			v, err := variant(args[0], cfg)
			if err != nil {
				return err
			}

			srv, _ := app.Build(v, common.NewSilentLogger())
			doc := catalogue{
				Server:       srv.Name(),
				Version:      srv.Version(),
				Instructions: srv.Instructions(),
				Tools:        srv.Descriptors(),
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			default:
				return fmt.Errorf("unknown format %q (use yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func callCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <server> <tool> [json-arguments]",
		Short: "Invoke a tool in-process and print its result",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			v, err := variant(args[0], cfg)
			if err != nil {
				return err
			}

			arguments := map[string]any{}
			if len(args) == 3 {
				if err := json.Unmarshal([]byte(args[2]), &arguments); err != nil {
					return fmt.Errorf("arguments must be a JSON object: %w", err)
				}
			}

			srv, _ := app.Build(v, common.NewLoggerFromConfig(cfg.Logging))
			res, err := srv.Call(context.Background(), args[1], arguments)
			if err != nil {
				return err
			}

			text := resultText(res)
			if res.IsError {
				return fmt.Errorf("%s: %s", args[1], text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		parts = append(parts, mcp.GetTextFromContent(c))
	}
	return strings.Join(parts, "\n")
}

func versionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common.LoadVersionFromFile()
			info := common.CurrentBuild()
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				fmt.Fprintf(out, "minimcp %s\n", info)
				return nil
			case "json":
				return json.NewEncoder(out).Encode(info)
			case "yaml":
				return yaml.NewEncoder(out).Encode(info)
			default:
				return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}
