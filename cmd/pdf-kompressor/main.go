package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KartheekReddy100/PDF-Kompressor/internal/config"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/engine"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/fsutil"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/gs"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/logger"
	"github.com/KartheekReddy100/PDF-Kompressor/internal/web"
)

var (
	cfgFile     string
	inputPath   string
	outputPath  string
	engineName  string
	qualityName string
	autoInstall bool
	verbose     bool
	quiet       bool
	version     string
	buildTime   string
	port        int
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-kompressor",
	Short: "Reduce PDF file size with Ghostscript or an in-process fallback",
	Long: `PDF-Kompressor shrinks PDF files by invoking Ghostscript when it can be
located, and falls back to an in-process optimizer when it cannot.

Features:
- Quality presets from extreme (smallest) to high (best fidelity)
- Batch mode over a folder of PDFs with a live per-file report
- Never overwrites existing files; outputs get a unique " (n)" suffix
- Optional automatic Ghostscript install on Windows
- Web interface with live progress`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompress(args)
	},
}

// locateCmd prints where the Ghostscript executable was found.
var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show which Ghostscript executable would be used",
	Long: `Runs the same discovery as a compression job (bundled directory, search
path, well-known install directories) and prints the result. Useful for
debugging engine selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLocate()
	},
}

// serveCmd starts the web interface server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start web interface server",
	Long: `Starts a web server with a graphical interface for PDF-Kompressor.
Select an input folder, pick an engine and quality preset, and watch
per-file progress live.

Access the interface at http://localhost:<port> (default: 8080)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "input PDF file or folder of PDFs")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file or folder (default: next to the input)")
	rootCmd.Flags().StringVar(&engineName, "engine", "", "compression engine (auto, ghostscript, basic)")
	rootCmd.Flags().StringVar(&qualityName, "quality", "", "quality preset (extreme, strong, balanced, high)")
	rootCmd.Flags().BoolVar(&autoInstall, "auto-install-ghostscript", false, "download and install Ghostscript when missing (Windows)")

	serveCmd.Flags().IntVar(&port, "port", 0, "port to run web server on (default from config)")

	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig loads configuration file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pdf-kompressor")
		viper.AddConfigPath("/etc/pdf-kompressor")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// runCompress executes a batch over the input file or folder. Per-file
// failures are reported but never fail the run; only setup errors do.
func runCompress(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if cfg.InputPath == "" {
		return errors.New("missing --input (or run 'pdf-kompressor serve' for the web interface)")
	}

	quality, err := engine.ParseQuality(cfg.Quality)
	if err != nil {
		return err
	}
	choice, err := engine.ParseChoice(cfg.Engine)
	if err != nil {
		return err
	}

	log := setupLogger(cfg)
	finder := gs.NewFinder(cfg.Ghostscript.Binary, cfg.Ghostscript.ExtraDirs)

	if cfg.Ghostscript.AutoInstall && choice != engine.EngineBasic {
		installer := gs.NewInstaller(finder, log)
		if _, err := installer.EnsureInstalled(context.Background(), true); err != nil {
			// Missing Ghostscript is not fatal here; auto falls back and an
			// explicit ghostscript engine fails per file.
			log.Warnf("Ghostscript auto-install failed: %v", err)
		}
	}

	if cfg.OutputPath != "" && filepath.Ext(cfg.OutputPath) == "" {
		if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
	}

	jobs, err := engine.CollectJobs(cfg.InputPath, cfg.OutputPath, cfg.OutputSuffix, quality, choice)
	if err != nil {
		return err
	}

	runner := engine.NewRunner(
		finder,
		&engine.ExecRunner{Timeout: cfg.GhostscriptTimeout()},
		engine.NewPDFCPUFallback(),
		log,
	)

	total := len(jobs)
	n := 0
	batch := engine.NewBatch(runner, log, func(res engine.Result) {
		n++
		if quiet {
			return
		}
		if res.Succeeded() {
			fmt.Printf("[%d/%d] OK: %s -> %s (%s -> %s, saved %.1f%%)\n",
				n, total, filepath.Base(res.Job.Source), res.OutputPath,
				fsutil.HumanSize(res.OriginalSize), fsutil.HumanSize(res.CompressedSize),
				res.SavedPercent())
		} else {
			fmt.Printf("[%d/%d] FAIL: %s\n   %v\n", n, total, filepath.Base(res.Job.Source), res.Err)
		}
	})

	results := batch.Run(context.Background(), jobs)

	if !quiet {
		fmt.Println(engine.Summarize(results).String())
	}
	return nil
}

// runLocate prints the discovered Ghostscript executable.
func runLocate() error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	finder := gs.NewFinder(cfg.Ghostscript.Binary, cfg.Ghostscript.ExtraDirs)
	path, ok := finder.Locate()
	if !ok {
		return errors.New("no Ghostscript executable found")
	}

	fmt.Println(path)
	if v, err := gs.Version(context.Background(), path); err == nil {
		fmt.Printf("version %s\n", v)
	}
	return nil
}

// runServe starts the web server and handles graceful shutdown.
func runServe() error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Web.Port = port
	}

	log := setupLogger(cfg)

	if cfg.Ghostscript.AutoInstall {
		finder := gs.NewFinder(cfg.Ghostscript.Binary, cfg.Ghostscript.ExtraDirs)
		installer := gs.NewInstaller(finder, log)
		if _, err := installer.EnsureInstalled(context.Background(), true); err != nil {
			log.Warnf("Ghostscript auto-install failed: %v", err)
		}
	}

	server := web.NewServer(cfg, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(cfg.Web.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("PDF-Kompressor web interface started on http://localhost:%d\n", cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop the server")

	<-sigChan
	fmt.Println("\nShutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}

// loadConfig loads configuration and applies CLI overrides.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if inputPath != "" {
		cfg.InputPath = inputPath
	}
	if cfg.InputPath == "" && len(args) > 0 {
		cfg.InputPath = args[0]
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if engineName != "" {
		cfg.Engine = engineName
	}
	if qualityName != "" {
		cfg.Quality = qualityName
	}
	if autoInstall {
		cfg.Ghostscript.AutoInstall = true
	}

	return cfg, nil
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config) *logrus.Logger {
	loggerCfg := logger.LoggerConfig{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Console:    !quiet,
	}

	if verbose {
		loggerCfg.Level = "debug"
	}
	if quiet {
		loggerCfg.Level = "error"
	}

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
