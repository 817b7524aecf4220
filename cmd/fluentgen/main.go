// Command fluentgen generates typed localization accessors from the
// default-tier catalogs: it loads them, builds the entry dependency
// graph, resolves variable requirements transitively, and writes one Go
// source file with the accessor surface.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"fluentloc/pkg/bindgen"
	"fluentloc/pkg/loader"
)

// genConfig holds the generator settings, fed from an optional TOML file
// and overridden by flags.
type genConfig struct {
	Package string `toml:"package"`
	Out     string `toml:"out"`
	Dir     string `toml:"dir"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags      genConfig
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "fluentgen",
		Short: "Generate typed localization accessors from catalog files",
		Long: `fluentgen reads the "default" catalog directory under the resource root
(TRANSLATION_DIR, or ./localizations), builds the dependency graph over
its entries, and emits one Go accessor per message, parameterized by the
variables the message transitively needs.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := genConfig{
				Package: "localizations",
				Out:     "localizations.gen.go",
			}
			if err := applyConfigFile(&cfg, configFile); err != nil {
				return err
			}
			if cmd.Flags().Changed("package") {
				cfg.Package = flags.Package
			}
			if cmd.Flags().Changed("out") {
				cfg.Out = flags.Out
			}
			if cmd.Flags().Changed("dir") {
				cfg.Dir = flags.Dir
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&flags.Package, "package", "localizations", "package name for the generated file")
	cmd.Flags().StringVar(&flags.Out, "out", "localizations.gen.go", "path of the generated file")
	cmd.Flags().StringVar(&flags.Dir, "dir", "", "resource root (defaults to TRANSLATION_DIR)")
	cmd.Flags().StringVar(&configFile, "config", "fluentgen.toml", "optional TOML config file")

	return cmd
}

func applyConfigFile(cfg *genConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func run(cfg genConfig) error {
	loaderCfg, err := loader.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Dir != "" {
		loaderCfg.BasePath = cfg.Dir
	}

	resources, err := loader.LoadResourcesFromFolder(filepath.Join(loaderCfg.BasePath, loader.DefaultDir))
	if err != nil {
		return err
	}

	nodes, err := bindgen.BuildGraph(resources)
	if err != nil {
		return err
	}
	if err := bindgen.Resolve(nodes); err != nil {
		return err
	}

	code, err := bindgen.Generate(nodes, cfg.Package)
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.Out, code, 0o644); err != nil {
		return fmt.Errorf("write generated bindings %s: %w", cfg.Out, err)
	}
	slog.Info("generated localization bindings", "out", cfg.Out, "entries", len(nodes))
	return nil
}
