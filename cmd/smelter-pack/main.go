// Command smelter-pack compiles a scripting-language source file into a
// Minecraft data pack.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgewright/smelter/pkgs/datapack"
	"github.com/forgewright/smelter/pkgs/jsparse"
	"github.com/forgewright/smelter/pkgs/script"
)

// Build-time variables, set via ldflags.
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

var (
	outputDir string
	debug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smelter-pack <path>",
	Short: "Compile a scripting-language source file into a data pack",
	Long: `smelter-pack reads a source file, parses it, lowers every function and
expression into .mcfunction text, and writes a complete data pack under the
fixed "smelter" namespace.`,
	Args: cobra.ExactArgs(1),
	RunE: compile,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smelter-pack %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "out", "Output directory for the compiled data pack")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging during lowering")
	rootCmd.AddCommand(versionCmd)
}

func compile(cmd *cobra.Command, args []string) error {
	path := args[0]

	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	pack, err := script.Compile(path, jsparse.Parse, logger)
	if err != nil {
		return err
	}

	if err := datapack.Write(pack, outputDir); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d functions to %s (fingerprint %s)\n", len(pack.Functions), outputDir, datapack.Fingerprint(pack))
	return nil
}
