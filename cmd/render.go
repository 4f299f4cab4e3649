package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ecolink/ecolink/internal/directory"
	"github.com/ecolink/ecolink/internal/matching"
	"github.com/ecolink/ecolink/internal/waste"
)

const previewTags = 3

func printResult(w io.Writer, result matching.Result) {
	if result.ShowBestMatches {
		fmt.Fprintln(w, "🌟 Best Matches")
		for _, c := range result.BestMatches {
			printCompany(w, c, true)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "🏢 All Companies")
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "  no companies match")
		return
	}
	for _, e := range result.Entries {
		printCompany(w, e.Company, e.BestMatch)
	}
}

func printCompany(w io.Writer, c *directory.Company, best bool) {
	marker := " "
	if best {
		marker = "*"
	}
	fmt.Fprintf(w, "%s %s\n", marker, c.Name)
	if c.Description != "" {
		fmt.Fprintf(w, "    %s\n", c.Description)
	}
	fmt.Fprintf(w, "    [%s]\n", joinTags(c.Preview(previewTags)))
}

func printExplain(w io.Writer, c *directory.Company, shared []waste.Tag) {
	fmt.Fprintln(w, c.Name)
	if c.Description != "" {
		fmt.Fprintln(w, c.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Accepted Waste:")
	for _, tag := range c.AcceptedWaste {
		fmt.Fprintf(w, "  • %s\n", tag)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "🤖 Why We Matched You")
	if len(shared) == 0 {
		fmt.Fprintln(w, "  There are no clear matches found.")
		return
	}
	fmt.Fprintf(w, "  You and %s both handle:\n", c.Name)
	for _, tag := range shared {
		fmt.Fprintf(w, "  • %s\n", tag)
	}
}

func joinTags(tags []waste.Tag) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ", ")
}
