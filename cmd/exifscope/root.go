package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tmcnab/exifscope/internal/config"
	"github.com/tmcnab/exifscope/internal/exifdata"
	"github.com/tmcnab/exifscope/internal/geocode"
	"github.com/tmcnab/exifscope/internal/metadata"
	"github.com/tmcnab/exifscope/internal/report"
)

var (
	verbose   bool
	jsonOut   bool
	autoSave  bool
	outDir    string
	doGeocode bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "exifscope [image]",
	Short: "Extract and categorize EXIF metadata from an image",
	Long: `Exifscope reads the EXIF block embedded in an image file and presents
it in categorized form: GPS location, device/camera, timestamps, image
settings, and everything else. The report can optionally be saved as an
indented JSON file.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("falling back to default config", "error", err)
	}
	if noColor || cfg.NoColor {
		color.NoColor = true
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if !jsonOut {
		path = promptLine("Enter path to image file: ")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		fmt.Println("No file provided. Exiting.")
		return nil
	}

	if !jsonOut {
		fmt.Printf("\nAnalyzing: %s\n", path)
	}

	file, err := metadata.ProbeFile(path)
	if err != nil {
		// Still emit a report; only the descriptor fields we have.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		file = metadata.FileInfo{Path: path, Name: filepath.Base(path)}
	}

	raw, err := exifdata.Decode(path)
	if err != nil {
		slog.Debug("exif extraction failed", "path", path, "error", err)
		fmt.Fprintln(os.Stderr, "No EXIF data could be extracted from this file.")
		raw = exifdata.NewRawTags()
	}

	rep, err := metadata.Classify(file, raw)
	if err != nil {
		return fmt.Errorf("corrupt GPS record: %w", err)
	}

	if doGeocode && rep.GPS != nil && rep.GPS.Latitude != nil && rep.GPS.Longitude != nil {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		client := geocode.NewClient(cfg.GeocodeURL, cfg.UserAgent)
		place, gerr := client.Locate(ctx, *rep.GPS.Latitude, *rep.GPS.Longitude)
		if gerr != nil {
			slog.Debug("reverse geocode failed", "error", gerr)
		} else {
			rep.GPS.Place = place
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	report.NewPrinter(os.Stdout).Print(rep)

	if autoSave || confirmSave() {
		dir := outDir
		if dir == "" {
			dir = cfg.ReportDir
		}
		saved, serr := report.Save(rep, dir, time.Now())
		if serr != nil {
			return fmt.Errorf("save report: %w", serr)
		}
		color.Green("Report saved to: %s", saved)
	}
	return nil
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func confirmSave() bool {
	answer := strings.ToLower(promptLine("Save report as JSON? (y/n): "))
	return answer == "y" || answer == "yes"
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON to stdout")
	rootCmd.Flags().BoolVar(&autoSave, "save", false, "Save the JSON report without prompting")
	rootCmd.Flags().StringVar(&outDir, "out", "", "Directory for saved reports (default: config report_dir)")
	rootCmd.Flags().BoolVar(&doGeocode, "geocode", false, "Resolve GPS coordinates to a place name")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
