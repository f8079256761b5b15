package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"project_analysis_backend/bootstrap"
	"project_analysis_backend/config"
	"project_analysis_backend/models"
	"project_analysis_backend/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	forceMock  bool
)

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use:   "docanalyze",
		Short: "Extract a project analysis from local documents",
		Long: `docanalyze runs the same pipeline as the upload endpoint on local
PDF, text and markdown files and prints the merged analysis as JSON.`,
		SilenceUsage: true,
	}

	var analyzeCmd = &cobra.Command{
		Use:   "analyze <files...>",
		Short: "Analyze one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the JSON result to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&forceMock, "mock", false, "Use the canned extraction client")
	rootCmd.AddCommand(analyzeCmd)

	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		PrintError("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if forceMock {
		cfg.ForceMock = true
	}
	logging.Init(cfg.AppEnv)
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	PrintTitle("Analyzing %d document(s)", len(args))
	if cfg.MockMode() {
		PrintWarning("Mock mode: results are canned")
	}

	res, err := analyze(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		PrintWarning("%s: %s", e.Error, e.Details)
	}

	var out io.Writer = cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := writeResult(out, res); err != nil {
		return err
	}

	if outputFile != "" {
		PrintSuccess("Wrote analysis of %q to %s", res.ProjectName, outputFile)
	}
	return nil
}

// analyze stages copies of the given files and runs the batch pipeline on
// them; the originals are left untouched.
func analyze(ctx context.Context, cfg *config.Config, paths []string) (*models.AnalysisResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return nil, err
	}
	defer app.Shutdown()

	storage := app.Infrastructure.Storage
	files := make([]models.UploadedFile, 0, len(paths))
	for _, p := range paths {
		f, err := storage.StageLocal(p)
		if err != nil {
			storage.Remove(files...)
			return nil, err
		}
		PrintInfo("Staged %s (%d bytes)", p, f.Size)
		files = append(files, f)
	}
	return app.Services.DocService.ProcessBatch(ctx, files), nil
}

func writeResult(w io.Writer, res *models.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	PrintTitle("Effective configuration")
	rows := [][2]string{
		{"env", cfg.AppEnv},
		{"port", cfg.HttpPort},
		{"upload dir", cfg.UploadDir},
		{"max file size", fmt.Sprintf("%d", cfg.MaxFileSize)},
		{"token threshold", fmt.Sprintf("%d", cfg.TokenThreshold)},
		{"chunk size", fmt.Sprintf("%d", cfg.ChunkSize)},
		{"extraction timeout", cfg.ExtractionTimeout.String()},
		{"provider", cfg.LLMProvider},
		{"openai model", cfg.OpenAIModel},
		{"openai key", maskKey(cfg.OpenAIAPIKey)},
		{"ollama host", cfg.OllamaHost},
		{"ollama model", cfg.OllamaModel},
		{"redis", cfg.RedisURL},
		{"result cache ttl", cfg.ResultCacheTTL.String()},
		{"mock mode", fmt.Sprintf("%t", cfg.MockMode())},
	}
	for _, r := range rows {
		PrintKeyValue(r[0], r[1])
	}
	return nil
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
