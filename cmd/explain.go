package cmd

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/matching"
)

var explainCmd = &cobra.Command{
	Use:   "explain <company name or id>",
	Short: "Show a company and the waste you share with it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		explain(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringArrayP("waste", "w", nil, "a waste item you produce (repeatable)")
	explainCmd.Flags().String("bio", "", "classify this bio and use the result as your waste")
}

func explain(cmd *cobra.Command, ref string) {
	ctx := context.Background()
	logger, config := setup()

	d, err := loadDirectory(config, logger)
	if err != nil {
		logger.Fatal("loading directory", zap.Error(err))
	}

	company := findCompany(d, ref)
	if company == nil {
		logger.Fatal("company not found", zap.String("company", ref), zap.Strings("known", d.Names()))
	}

	userWaste := userWasteFromFlags(ctx, cmd, config, logger)

	printExplain(cmd.OutOrStdout(), company, matching.Explain(company, userWaste))
}

func findCompany(d *directory.Directory, ref string) *directory.Company {
	if id, err := uuid.Parse(ref); err == nil {
		return d.FindByID(id)
	}
	return d.FindByName(ref)
}
