// platformer is a small side-scrolling platformer.
//
// Usage:
//
//	platformer                 - Play the default level
//	platformer level <file>    - Print a summary of a Tiled level
//
// Flags:
//
//	--level <name>   - level file under tilemaps/ (default from settings)
//	--debug          - debug overlay, debug logging and prefab hot reload
//	--config <path>  - settings file
//	--assets <dir>   - read assets from disk instead of the embedded tree
//	--monitor        - open on the first monitor instead of the primary
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/scene"
)

var (
	flagLevel   string
	flagDebug   bool
	flagConfig  string
	flagAssets  string
	flagMonitor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "platformer",
	Short:         "Run, jump and avoid the spikes",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

var levelCmd = &cobra.Command{
	Use:   "level <file>",
	Short: "Print a summary of a Tiled level",
	Long: `Reads a Tiled JSON level and prints its size, layers, the number of
solid platform tiles, the merged collision rectangles and the hazard
rectangles the game would build from it.`,
	Args: cobra.ExactArgs(1),
	RunE: runLevel,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "level file under tilemaps/ (.json optional)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug overlay, logging and prefab hot reload")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "asset directory to use instead of the embedded assets")
	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", false, "use the first monitor instead of the primary")

	rootCmd.AddCommand(levelCmd)
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runGame(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDebug {
		settings.Debug = true
	}
	if flagLevel != "" {
		settings.Level.Name = levelFileName(flagLevel)
	}

	logger := newLogger(settings.Debug)
	logger.Info("settings loaded", "source", settings.Source, "level", settings.Level.Name)

	var fsys fs.FS = assets.FS()
	if flagAssets != "" {
		fsys = os.DirFS(flagAssets)
		logger.Info("using asset directory", "dir", flagAssets)
	}

	if flagMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetTPS(settings.Physics.TPS)

	ctx := scene.NewContext(settings, logger)
	s := scene.NewPlatformer(assets.NewLoader(fsys), assets.DefaultManifest(settings.Level.Name))

	game, err := NewGame(s, ctx, settings.Debug)
	if err != nil {
		return err
	}
	return run(game)
}

func runLevel(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	summary, err := summarizeLevelFile(args[0], settings)
	if err != nil {
		return err
	}
	summary.Print(cmd.OutOrStdout())
	return nil
}
