package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/waste"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "List companies for your waste, best matches first",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringArrayP("waste", "w", nil, "a waste item you produce (repeatable)")
	matchCmd.Flags().String("bio", "", "classify this bio and use the result as your waste")
	matchCmd.Flags().StringP("category", "c", "", "only companies accepting waste of this category")
	matchCmd.Flags().StringP("search", "s", "", "only companies whose name or accepted waste contains this text")
}

func match(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	d, err := loadDirectory(config, logger)
	if err != nil {
		logger.Fatal("loading directory", zap.Error(err))
	}

	userWaste := userWasteFromFlags(ctx, cmd, config, logger)

	var q matching.Query
	q.Search, _ = cmd.Flags().GetString("search")
	if key, _ := cmd.Flags().GetString("category"); key != "" {
		category, ok := waste.CategoryByKey(key)
		if !ok {
			logger.Fatal("unknown category", zap.String("category", key), zap.Strings("known", waste.CategoryKeys()))
		}
		q.Category = category
	}

	result := matching.New(d).Match(userWaste, q)
	logger.Debug("filters applied",
		zap.Any("filters", matching.Describe(matching.Steps(q))),
		zap.Any("steps", result.Steps),
	)

	printResult(cmd.OutOrStdout(), result)
}

// userWasteFromFlags reads --waste items, or classifies --bio when given.
func userWasteFromFlags(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) waste.Set {
	items, _ := cmd.Flags().GetStringArray("waste")
	userWaste, err := waste.ParseSet(items)
	if err != nil {
		logger.Fatal("parsing waste", zap.Error(err), zap.String("hint", "see '"+app+" categories --all'"))
	}

	bio, _ := cmd.Flags().GetString("bio")
	if bio == "" {
		return userWaste
	}

	classifier, err := newClassifier(ctx, config.Classifier, logger)
	if err != nil {
		logger.Fatal("building classifier", zap.Error(err))
	}

	tags, err := classifier.Classify(ctx, bio)
	if err != nil {
		logger.Fatal("classifying bio", zap.Error(err))
	}

	for _, tag := range tags {
		userWaste.Add(tag)
	}
	logger.Info("classified bio", zap.Strings("waste", userWaste.Strings()))

	return userWaste
}
