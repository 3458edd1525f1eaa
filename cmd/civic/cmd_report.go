package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
	"github.com/oksasatya/civic-reports/internal/feed"
)

var (
	reportCategory    string
	reportTitle       string
	reportDescription string
	reportLocation    string
	reportLat         float64
	reportLng         float64
	reportImageURL    string
	reportVideoURL    string
	reportAs          string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Submit a new report",
	Long: `Submit a new report.

Either --location or both --lat and --lng are required; coordinates are
turned into an address by the server's geocode endpoint.`,
	RunE: runReport,
}

var deleteAs string

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	reportCmd.Flags().StringVar(&reportCategory, "category", string(entity.CategoryOther), "roadways, utility, animal, sanitation or other")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "title (defaults to \"<Category> Issue\")")
	reportCmd.Flags().StringVar(&reportDescription, "description", "", "what is wrong")
	reportCmd.Flags().StringVar(&reportLocation, "location", "", "address or landmark")
	reportCmd.Flags().Float64Var(&reportLat, "lat", 0, "latitude")
	reportCmd.Flags().Float64Var(&reportLng, "lng", 0, "longitude")
	reportCmd.Flags().StringVar(&reportImageURL, "image-url", "", "photo URL (see upload)")
	reportCmd.Flags().StringVar(&reportVideoURL, "video-url", "", "video URL (see upload)")
	reportCmd.Flags().StringVar(&reportAs, "as", "", "reporter name (default \"You\")")

	deleteCmd.Flags().StringVar(&deleteAs, "as", "", "your reporter name")
}

func runReport(cmd *cobra.Command, args []string) error {
	category, err := entity.ParseCategory(reportCategory)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	c := newClient()

	location := reportLocation
	if location == "" && cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		loc, _, err := c.ReverseGeocode(ctx, reportLat, reportLng)
		if err != nil {
			return fmt.Errorf("failed to resolve coordinates: %w", err)
		}
		location = loc
	}

	in, err := feed.Draft{
		Category:    category,
		Description: reportDescription,
		Location:    location,
		ImageURL:    reportImageURL,
		VideoURL:    reportVideoURL,
		ReportedBy:  reportAs,
	}.Build()
	if err != nil {
		return err
	}
	if reportTitle != "" {
		in.Title = reportTitle
	}

	created, err := feed.New(c).Submit(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Report submitted successfully!")
	printReport(cmd.OutOrStdout(), *created)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()
	f := feed.New(newClient())
	if err := f.Load(ctx); err != nil {
		return err
	}
	r, ok := f.Find(id)
	if !ok {
		return fmt.Errorf("report %s not found", id)
	}
	if !feed.CanDelete(r, deleteAs) {
		return errors.New("you can only delete your own reports")
	}
	if err := f.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %s\n", id)
	return nil
}
