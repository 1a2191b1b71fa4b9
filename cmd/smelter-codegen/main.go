// Command smelter-codegen generates a TypeScript command API from the
// Brigadier command tree published for a given Minecraft version.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forgewright/smelter/pkgs/brigadier"
	"github.com/forgewright/smelter/pkgs/cache"
	"github.com/forgewright/smelter/pkgs/command"
	"github.com/forgewright/smelter/pkgs/tsemit"
)

// Build-time variables, set via ldflags.
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

var (
	cacheDir   string
	outputPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smelter-codegen <version>",
	Short: "Generate a TypeScript command API from a Brigadier command tree",
	Long: `smelter-codegen fetches the Brigadier command tree published for a
Minecraft version, consolidates and enumerates its commands, and emits a
TypeScript source file describing every callable command signature.`,
	Args: cobra.ExactArgs(1),
	RunE: generate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smelter-codegen %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", defaultCacheDir(), "Directory for cached command-tree payloads")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "out/commands.ts", "Output path for the generated TypeScript source")
	rootCmd.AddCommand(versionCmd)
}

func generate(cmd *cobra.Command, args []string) error {
	gameVersion := args[0]

	client, err := cache.NewClient(cacheDir)
	if err != nil {
		return err
	}

	payload, err := client.Get(context.Background(), gameVersion)
	if err != nil {
		return err
	}

	validator, err := brigadier.NewValidator()
	if err != nil {
		return fmt.Errorf("building schema validator: %w", err)
	}
	if err := validator.Validate(payload); err != nil {
		return err
	}

	root, err := brigadier.LoadPayload(payload)
	if err != nil {
		return err
	}
	tree, err := brigadier.Build(root)
	if err != nil {
		return err
	}

	tree = brigadier.Consolidate(tree)
	tree = brigadier.RewriteRedirects(tree)

	commandMap := command.Enumerate(tree)

	source, err := tsemit.Emit(commandMap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return &tsemit.WriteError{Path: outputPath, Err: err}
	}
	if err := os.WriteFile(outputPath, []byte(source), 0o644); err != nil {
		return &tsemit.WriteError{Path: outputPath, Err: err}
	}

	fmt.Fprintf(os.Stderr, "wrote %d commands to %s\n", commandMap.Len(), outputPath)
	return nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".smelter-cache"
	}
	return filepath.Join(dir, "smelter", "commands")
}
