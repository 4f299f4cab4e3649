package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecolink/ecolink/internal/waste"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List waste categories and their items",
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()

		if all, _ := cmd.Flags().GetBool("all"); all {
			for _, tag := range waste.Vocabulary() {
				fmt.Fprintln(w, tag)
			}
			return
		}

		for _, c := range waste.Categories() {
			fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Key)
			for _, tag := range c.Tags() {
				fmt.Fprintf(w, "  • %s\n", tag)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().BoolP("all", "a", false, "print the whole waste vocabulary instead")
}
