package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"oak/internal/advisor"
	"oak/internal/analysis"
	"oak/internal/config"
	"oak/internal/diag"
	"oak/internal/hostinfo"
	"oak/internal/kb"
	"oak/internal/logger"
	"oak/internal/trace"
)

var (
	rootCmd = &cobra.Command{
		Use:   "oak",
		Short: "Optimization advisor for AI on the edge",
	}
	configPath string

	flagHardware string
	flagPriority string
	flagJSON     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the oak configuration file")

	adviseCmd.Flags().StringVarP(&flagHardware, "hardware", "H", "", "Identifier of the target hardware (e.g. 'esp32-s3')")
	adviseCmd.Flags().StringVarP(&flagPriority, "priority", "p", "latency", "Optimization priority: 'latency', 'energy', or 'size'")
	adviseCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit the report as JSON instead of a table")
	_ = adviseCmd.MarkFlagRequired("hardware")

	hardwareCmd.AddCommand(hardwareListCmd)
	hardwareCmd.AddCommand(hardwareDetectCmd)

	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(hardwareCmd)
}

func loadKnowledgeBase(cfg *config.Config, log *logger.Logger) *kb.KnowledgeBase {
	base, diags, err := kb.Load(afero.NewOsFs(), cfg.KnowledgeBase.Path)
	if err != nil {
		fatalf("Failed to load knowledge base: %v", err)
	}
	reportDiagnostics(log, diags)
	return base
}

func newAnalyzer(cfg *config.Config) *analysis.Analyzer {
	return analysis.NewAnalyzer(&trace.ExecRunner{
		Command: cfg.Profiler.Command,
		Args:    cfg.Profiler.Args,
	})
}

func calibrationFromConfig(cfg *config.Config) advisor.Calibration {
	return advisor.Calibration{
		BaselineRAMFactor: cfg.Calibration.BaselineRAMFactor,
		INT8RAMFactor:     cfg.Calibration.INT8RAMFactor,
		FP16RAMFactor:     cfg.Calibration.FP16RAMFactor,
	}
}

func reportDiagnostics(log *logger.Logger, diags []diag.Diagnostic) {
	for _, d := range diags {
		log.Warn(d.Message,
			zap.String("code", d.Code),
			zap.String("stage", d.Stage),
			zap.String("severity", string(d.Severity)),
		)
	}
}

func fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}

var adviseCmd = &cobra.Command{
	Use:   "advise [model]",
	Short: "Analyze a model and recommend optimization strategies for a target hardware",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		zlog := logger.New("cmd")
		modelPath := args[0]

		priority, err := advisor.ParsePriority(flagPriority)
		if err != nil {
			fatalf("Error: %v", err)
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			fatalf("Failed to load config: %v", err)
		}

		base := loadKnowledgeBase(cfg, zlog)
		hw, err := base.Get(flagHardware)
		if err != nil {
			fatalf("Error: %v", err)
		}

		profile, diags, err := newAnalyzer(cfg).AnalyzeModel(context.Background(), modelPath)
		if err != nil {
			fatalf("Error: %v", err)
		}
		reportDiagnostics(zlog, diags)

		report, err := advisor.NewAdvisor(calibrationFromConfig(cfg)).Advise(profile, hw, priority)
		if err != nil {
			fatalf("Error: %v", err)
		}

		if flagJSON {
			printJSON(report)
			return
		}

		fmt.Printf("Model: %s | Hardware: %s %s | Priority: %s\n",
			modelPath, hw.Vendor, hw.Identifier, priority)
		fmt.Printf("Model SHA256: %s... | Ops: %d | MACs: %s\n\n",
			profile.ModelSHA256[:12], profile.TotalOps, humanize.Comma(profile.TotalMACs))
		renderReport(report)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [model]",
	Short: "Extract a model's feature profile without running the advisor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		zlog := logger.New("cmd")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			fatalf("Failed to load config: %v", err)
		}

		profile, diags, err := newAnalyzer(cfg).AnalyzeModel(context.Background(), args[0])
		if err != nil {
			fatalf("Error: %v", err)
		}
		reportDiagnostics(zlog, diags)

		printJSON(profile)
	},
}

var hardwareCmd = &cobra.Command{
	Use:   "hardware",
	Short: "Inspect the hardware knowledge base",
}

var hardwareListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all hardware identifiers in the knowledge base",
	Run: func(cmd *cobra.Command, args []string) {
		zlog := logger.New("cmd")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			fatalf("Failed to load config: %v", err)
		}

		base := loadKnowledgeBase(cfg, zlog)
		for _, id := range base.List() {
			fmt.Println(id)
		}
	},
}

var hardwareDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Probe the local machine into a hardware profile skeleton",
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := hostinfo.Detect()
		if err != nil {
			fatalf("Failed to detect local hardware: %v", err)
		}
		printJSON(profile)
	},
}

func renderReport(report *advisor.AdvisorReport) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Score", "Strategy", "ROM (KB)", "RAM (KB)", "Feasible", "Summary"})
	table.SetAutoFormatHeaders(false)
	table.SetColWidth(60)

	for _, rec := range report.Recommendations {
		feasible := "no"
		if rec.Feasible {
			feasible = "yes"
		}
		table.Append([]string{
			fmt.Sprintf("%.2f", rec.PriorityScore),
			rec.StrategyName,
			fmt.Sprintf("%.1f", rec.EstimatedROMKB),
			fmt.Sprintf("%.1f", rec.EstimatedRAMKB),
			feasible,
			rec.Summary,
		})
	}

	table.Render()
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(data))
}
