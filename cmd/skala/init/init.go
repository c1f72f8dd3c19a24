// Package initcmder provides the init command for initializing a local .skala
// directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skalacodebr/chatgpt-skala/pkg/cliui"
	"github.com/skalacodebr/chatgpt-skala/pkg/config"
)

const (
	dirName = ".skala"
)

const initLongDesc string = `Initialize a new .skala/ directory in the current working directory.

Creates a local .skala/ directory that takes precedence over the default
~/.skala/ directory for configuration.

This is useful for maintaining separate chat settings per project or
directory. With --preset, the directory is seeded with a config.toml for a
known endpoint.

Examples:
  skala init
  skala init --preset deepseek
  skala init --preset ollama`

const initShortDesc string = "Initialize a local .skala/ directory"

func NewInitCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(preset)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "",
		fmt.Sprintf("Seed the config with a known endpoint preset (%s)",
			strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func runInit(preset string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	alreadyExists := err == nil && info.IsDir()

	if alreadyExists {
		fmt.Printf("Already initialized: %s\n", dir)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating .skala directory: %w", err)
		}
		fmt.Printf("Initialized .skala directory: %s\n", dir)
	}

	if preset == "" {
		return nil
	}

	cfg, err := config.PresetConfig(preset)
	if err != nil {
		return err
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return fmt.Errorf("seeding preset config: %w", err)
	}

	fmt.Printf("  %s Seeded %s preset %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(preset),
		cliui.DimStyle.Render(fmt.Sprintf("(model %s)", cfg.Chat.Model)),
	)

	return nil
}
