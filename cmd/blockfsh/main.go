// Command blockfsh is the command-line shell for blockfs: it mounts a raw
// image file and either formats it or drops into an interactive,
// line-oriented REPL dispatching to blockfs operations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/soypat/blockfs/internal/blockdev"
	"github.com/soypat/blockfs/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "blockfsh",
		Short: "blockfsh - a block-oriented teaching filesystem shell",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults if omitted)")
	root.AddCommand(newFormatCommand(), newShellCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "format",
		Short:        "create (or recreate) the image file and format it",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			dev, err := blockdev.OpenFile(cfg.ImagePath, cfg.BlockSize, cfg.BlockCount)
			if err != nil {
				return err
			}
			defer dev.Close()
			fsys, err := newMountedFS(cfg, dev)
			if err != nil {
				return err
			}
			if err := fsys.Format(); err != nil {
				return err
			}
			fmt.Printf("formatted %s (%d blocks of %d bytes)\n", cfg.ImagePath, cfg.BlockCount, cfg.BlockSize)
			return nil
		},
	}
}

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "shell",
		Short:        "start the interactive command shell",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			dev, err := blockdev.OpenFile(cfg.ImagePath, cfg.BlockSize, cfg.BlockCount)
			if err != nil {
				return err
			}
			defer dev.Close()
			fsys, err := newMountedFS(cfg, dev)
			if err != nil {
				return err
			}
			sh := newShell(fsys, os.Stdin, os.Stdout)
			return sh.run()
		},
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
