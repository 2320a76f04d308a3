package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/config"
	"github.com/abhisek/knowtest/internal/llm"
	"github.com/abhisek/knowtest/internal/logger"
	"github.com/abhisek/knowtest/internal/questiongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a new topic file with LLM-authored questions",
	Long: "Asks the configured LLM provider for questions at every level and writes them " +
		"as a topic file. Set KNOWTEST_LLM_PROVIDER and the provider's API key, or just " +
		"an API key to have the provider detected.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.LogMode, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		title, _ := cmd.Flags().GetString("topic")
		perLevel, _ := cmd.Flags().GetInt("per-level")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.DataDir
		}
		if perLevel < 1 {
			return fmt.Errorf("--per-level must be at least 1")
		}

		provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), log)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		gen := questiongen.New(provider, questiongen.DefaultConfig(), log)
		fmt.Fprintf(cmd.OutOrStdout(), "Generating %d questions per level for %q...\n", perLevel, title)
		topic, err := gen.BuildTopic(ctx, title, perLevel)
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, topicFileName(title))
		if err := catalog.WriteJSON(path, topic); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(topic.Questions), path)
		return nil
	},
}

// topicFileName turns "Infrastructure as Code" into "infrastructure-as-code.json".
func topicFileName(title string) string {
	return strings.ReplaceAll(catalog.NormalizeName(title), "_", "-") + ".json"
}

func init() {
	generateCmd.Flags().String("topic", "", "Topic title, e.g. \"Git\"")
	generateCmd.Flags().Int("per-level", 10, "Questions to generate per level")
	generateCmd.Flags().String("out", "", "Output directory (defaults to KNOWTEST_DATA_DIR)")
	_ = generateCmd.MarkFlagRequired("topic")
}
