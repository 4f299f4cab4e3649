package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [bio...]",
	Short: "Classify a company bio into waste items",
	Run: func(cmd *cobra.Command, args []string) {
		classify(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("file", "f", "", "read the bio from a file")
}

func classify(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup()

	bio, err := readBio(cmd, args)
	if err != nil {
		logger.Fatal("reading bio", zap.Error(err))
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
		fmt.Fprintln(cmd.OutOrStdout(), tag)
	}
}

func readBio(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return strings.Join(args, " "), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading bio file: %w", err)
	}
	return string(data), nil
}
