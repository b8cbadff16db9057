package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"moodchart/internal"
	"moodchart/internal/models"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD[ HH:MM] or RFC 3339", s)
}

func parseMoods(names []string) ([]models.MoodTag, error) {
	moods := make([]models.MoodTag, 0, len(names))
	for _, n := range names {
		m, ok := models.MoodByName(n)
		if !ok {
			return nil, fmt.Errorf("unknown mood %q", n)
		}
		moods = append(moods, m)
	}
	return moods, nil
}

func parseActivities(names []string) []models.Activity {
	out := make([]models.Activity, 0, len(names))
	for _, n := range names {
		out = append(out, models.NewActivity(n))
	}
	return out
}

func moodSummary(moods []models.MoodTag) string {
	parts := make([]string, len(moods))
	for i, m := range moods {
		parts[i] = m.Emoji() + " " + m.String()
	}
	return strings.Join(parts, ", ")
}

func addList(topLevel *cobra.Command, ro *rootOptions) {
	last := 0

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, oldest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				entries := app.Journal.Entries()
				offset := 0
				if last > 0 && last < len(entries) {
					offset = len(entries) - last
				}

				bold := color.New(color.Bold)
				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.MaxColWidth = 60
				tbl.Wrap = true
				tbl.AddRow(bold.Sprint("#"), bold.Sprint("Date"), bold.Sprint("Rating"), bold.Sprint("Moods"), bold.Sprint("Activities"), bold.Sprint("Note"))
				for i, e := range entries[offset:] {
					activities := make([]string, len(e.Activities))
					for j, a := range e.Activities {
						activities[j] = a.Name()
					}
					tbl.AddRow(offset+i, e.Timestamp.Format("2006-01-02 15:04"), fmt.Sprintf("%.1f", e.Rating), moodSummary(e.Moods), strings.Join(activities, ", "), e.Note)
				}
				_, _ = fmt.Fprintln(color.Output, tbl)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 0, "only show the most recent n entries")

	topLevel.AddCommand(cmd)
}

type entryOptions struct {
	rating     float64
	note       string
	date       string
	moods      []string
	activities []string
}

func (eo *entryOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&eo.rating, "rating", "r", 0, "rating, usually 0 to 100")
	cmd.Flags().StringVar(&eo.note, "note", "", "free text note")
	cmd.Flags().StringVar(&eo.date, "date", "", "entry date (default now)")
	cmd.Flags().StringSliceVarP(&eo.moods, "mood", "m", nil, "mood tag, by (partial) name; repeatable")
	cmd.Flags().StringSliceVarP(&eo.activities, "activity", "a", nil, "activity name; repeatable")
}

func addAdd(topLevel *cobra.Command, ro *rootOptions) {
	eo := &entryOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new entry.",
		Example: `
moodchart add --rating 72 --note "long walk" -m happy -a walking
moodchart add -r 40 --date 2024-03-01
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			moods, err := parseMoods(eo.moods)
			if err != nil {
				return err
			}
			ts := time.Now()
			if eo.date != "" {
				if ts, err = parseDate(eo.date); err != nil {
					return err
				}
			}

			return ro.withApp(func(app *internal.App) error {
				entry := models.NewJournalEntry(eo.rating, ts, eo.note)
				entry.Moods = moods
				entry.Activities = parseActivities(eo.activities)
				app.Journal.Add(entry)
				_, _ = fmt.Fprintf(color.Output, "Added %s\n", entry)
				return nil
			})
		},
	}
	eo.addFlags(cmd)
	_ = cmd.MarkFlagRequired("rating")

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, ro *rootOptions) {
	eo := &entryOptions{}

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit the entry at index (see `moodchart list`). Only given fields change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var index int
			if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			moods, err := parseMoods(eo.moods)
			if err != nil {
				return err
			}
			var ts time.Time
			if eo.date != "" {
				if ts, err = parseDate(eo.date); err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			return ro.withApp(func(app *internal.App) error {
				return app.Journal.Update(index, func(e *models.JournalEntry) {
					if flags.Changed("rating") {
						e.Rating = eo.rating
					}
					if flags.Changed("note") {
						e.Note = eo.note
					}
					if !ts.IsZero() {
						e.Timestamp = ts
					}
					if flags.Changed("mood") {
						e.Moods = moods
					}
					if flags.Changed("activity") {
						e.Activities = parseActivities(eo.activities)
					}
				})
			})
		},
	}
	eo.addFlags(cmd)

	topLevel.AddCommand(cmd)
}

func addRemoveLast(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "remove-last",
		Short: "Remove the most recent entry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(func(app *internal.App) error {
				removed, ok := app.Journal.RemoveLast()
				if !ok {
					_, _ = fmt.Fprintln(color.Output, "The journal is empty.")
					return nil
				}
				_, _ = fmt.Fprintf(color.Output, "Removed %s\n", removed)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}
