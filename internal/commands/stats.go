package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"moodchart/internal"
	"moodchart/internal/models"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func addStats(topLevel *cobra.Command, ro *rootOptions) {
	asJSON := false

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show weekday averages, the longest streak and activity correlation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				snap := app.Journal.Stats()
				if asJSON {
					data, err := json.MarshalIndent(snap, "", "  ")
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(color.Output, string(data))
					return nil
				}
				printStats(app, snap)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")

	topLevel.AddCommand(cmd)
}

func formatAverage(a models.Average) string {
	if !a.Defined() {
		return color.New(color.Faint).Sprint("n/a")
	}
	return fmt.Sprintf("%.2f", a.Float64())
}

func printStats(app *internal.App, snap models.StatsSnapshot) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Weekday"), bold.Sprint("Average"))
	for _, day := range weekdayOrder {
		tbl.AddRow(day.String(), formatAverage(snap.WeekdayAverages.For(day)))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(color.Output, tbl)

	session := app.Journal.Session()
	if session.ProgramOptions.ShowStreak && snap.Streak.Length > 0 {
		entries := app.Journal.Entries()
		from := entries[snap.Streak.Start].Timestamp
		to := entries[snap.Streak.End-1].Timestamp
		_, _ = fmt.Fprintf(color.Output, "\n%s %d entries, %s to %s (leniency %dh)\n",
			bold.Sprint("Longest streak:"), snap.Streak.Length,
			from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006"),
			session.ProgramOptions.StreakLeniency)
	}

	_, _ = fmt.Fprintln(color.Output, "")
	printBucket("Favorable", snap.ActivityStats.Favorable, color.New(color.FgGreen))
	printBucket("Unfavorable", snap.ActivityStats.Unfavorable, color.New(color.FgYellow))
}

func printBucket(title string, bucket models.ActivityBucket, c *color.Color) {
	_, _ = fmt.Fprintf(color.Output, "%s (%d entries, average %s)\n", c.Sprint(title), bucket.EntriesCounted, formatAverage(bucket.AverageRating))
	if len(bucket.TopActivities) == 0 {
		_, _ = fmt.Fprintln(color.Output, "  no activities")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, a := range bucket.TopActivities {
		tbl.AddRow("  "+a.Activity.Name(), a.Count)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
