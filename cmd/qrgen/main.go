// Package main provides the CLI entry point for qrgen.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/onlybana/qr-code-generator/internal/config"
	"github.com/onlybana/qr-code-generator/internal/logging"
	"github.com/onlybana/qr-code-generator/internal/server"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputPath string
	configPath string
	theme      string
	baseURL    string
	extension  string
	jsonOutput bool
	verbose    bool
	addr       string

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qrgen [input.xlsx]",
		Short: "Generate captioned QR codes for TG_ identifiers in a spreadsheet",
		Long: `qrgen scans the first sheet of an Excel workbook for cells starting with TG_,
renders one captioned SVG QR code per identifier and writes them all into a zip archive.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "qr-codes.zip", "Output archive path")
	rootCmd.Flags().StringVar(&theme, "theme", "", "Color theme: light or dark (default from config)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Base address prepended to each token (default from config)")
	rootCmd.Flags().StringVar(&extension, "ext", "", "Archive entry file extension (default from config)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print {archive} or {error} JSON to stdout instead of writing a file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if extension != "" {
		cfg.Extension = extension
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}
	opts := cfg.Options()
	opts.Logger = logger

	if jsonOutput {
		return printResponse(cmd, inputPath, cfg.Theme, opts)
	}

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return reportError(fmt.Errorf("file not found: %s", inputPath))
	}

	result, err := qrbatch.ConvertFile(cmd.Context(), inputPath, opts)
	if err != nil {
		return reportError(fmt.Errorf("conversion failed: %w", err))
	}

	if err := os.WriteFile(outputPath, result.Archive, 0644); err != nil {
		return reportError(fmt.Errorf("failed to write output: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d QR codes to %s\n", result.Entries, outputPath)
	for _, f := range result.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", f.Token, f.Reason)
	}
	return nil
}

// printResponse runs the entry operation and prints its JSON response.
// A missing input file yields the "No file uploaded" response.
func printResponse(cmd *cobra.Command, inputPath, themeName string, opts qrbatch.Options) error {
	req := qrbatch.Request{Theme: themeName}
	if f, err := os.Open(inputPath); err == nil {
		defer f.Close()
		req.File = f
	} else if !os.IsNotExist(err) {
		return reportError(err)
	}

	resp := qrbatch.Process(cmd.Context(), req, opts)
	enc := json.NewEncoder(cmd.OutOrStdout())
	if err := enc.Encode(resp); err != nil {
		return reportError(err)
	}
	if resp.Error != "" {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return reportError(server.New(cfg, logger).ListenAndServe(ctx))
}

// reportError prints err once to stderr and returns it for the exit code.
func reportError(err error) error {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
