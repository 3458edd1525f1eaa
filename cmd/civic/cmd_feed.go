package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
	"github.com/oksasatya/civic-reports/internal/feed"
)

var feedCategory string

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List reports, newest first",
	RunE:  runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&feedCategory, "category", "", "only show one category")
}

func runFeed(cmd *cobra.Command, args []string) error {
	var category entity.Category
	if feedCategory != "" {
		c, err := entity.ParseCategory(feedCategory)
		if err != nil {
			return err
		}
		category = c
	}

	f := feed.New(newClient())
	if err := f.Load(cmd.Context()); err != nil {
		return err
	}
	reports := f.Filter(category)
	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, "No reports yet.")
		return nil
	}
	for _, r := range reports {
		printReport(out, r)
	}
	return nil
}

func printReport(w io.Writer, r entity.Report) {
	fmt.Fprintf(w, "[%s] %s (%s)\n", r.ID, r.Title, r.Category.Label())
	fmt.Fprintf(w, "    %s\n", strings.TrimSpace(r.Description))
	fmt.Fprintf(w, "    at %s by %s on %s\n", r.Location, r.ReportedBy, r.Timestamp.Format(entity.TimestampLayout))
	if r.VideoURL != "" {
		fmt.Fprintf(w, "    video %s\n", r.VideoURL)
	}
}
