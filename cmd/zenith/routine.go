package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zenith/internal/bootstrap"
	routinedto "zenith/internal/modules/routine/dto"
	"zenith/internal/platform/clock"
	"zenith/internal/ui/theme"
	calendarview "zenith/internal/ui/views/calendar"
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func formatDays(days []int) string {
	labels := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(weekdayLabels) {
			labels = append(labels, weekdayLabels[d])
		}
	}
	return strings.Join(labels, ",")
}

func newRoutineCmd(o *rootOptions) *cobra.Command {
	routine := &cobra.Command{Use: "routine", Short: "Weekly routines and the calendar grid"}

	routine.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List routines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				routines := app.RoutineCLI.List(ctx)
				if len(routines) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no routines")
					return nil
				}
				for _, r := range routines {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s-%s\t%s\t%s\t%s\n", r.ID, r.StartTime, r.EndTime, formatDays(r.Days), r.ColorName, r.Title)
				}
				return nil
			})
		},
	})

	var title, start, end, days, color string
	add := &cobra.Command{
		Use:   "add --title <title> --start HH:MM --end HH:MM --days mon,wed",
		Short: "Add a weekly routine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				parsed, err := app.RoutineCLI.ParseDays(days)
				if err != nil {
					return err
				}
				id, err := app.RoutineCLI.Add(ctx, routinedto.RoutineInput{
					Title:     title,
					StartTime: start,
					EndTime:   end,
					Days:      parsed,
					Color:     color,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "routine added: %s\n", id)
				return nil
			})
		},
	}
	routineFlags(add, &title, &start, &end, &days, &color)

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change routine fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", id); err != nil {
				return err
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				input := routinedto.UpdateInput{
					ID:        id,
					Title:     optional(cmd, "title", title),
					StartTime: optional(cmd, "start", start),
					EndTime:   optional(cmd, "end", end),
					Color:     optional(cmd, "color", color),
				}
				if cmd.Flags().Changed("days") {
					parsed, err := app.RoutineCLI.ParseDays(days)
					if err != nil {
						return err
					}
					input.Days = &parsed
				}
				if err := app.RoutineCLI.Update(ctx, input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "routine updated")
				return nil
			})
		},
	}
	update.Flags().StringVar(&id, "id", "", "routine id")
	routineFlags(update, &title, &start, &end, &days, &color)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.RoutineCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "routine deleted")
				return nil
			})
		},
	}

	var date, mode string
	calendar := &cobra.Command{
		Use:   "calendar",
		Short: "Print the week (or day) grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			width := 120
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				loc, err := app.Config.Location()
				if err != nil {
					return err
				}
				day := time.Now().In(loc)
				if date != "" {
					if day, err = clock.ParseDate(date, loc); err != nil {
						return err
					}
				}
				out, err := app.RoutineCLI.Calendar(ctx, routinedto.CalendarQuery{Date: day, Width: width, Mode: mode, Unit: 1})
				if err != nil {
					return err
				}
				prefs := app.SettingsCLI.Show(ctx)
				styles := theme.New(prefs.Theme, prefs.AccentHex)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), calendarview.Render(out, width, 1, time.Now().In(loc), styles))
				return nil
			})
		},
	}
	calendar.Flags().StringVar(&date, "date", "", "any day in the period to show (YYYY-MM-DD, default today)")
	calendar.Flags().StringVar(&mode, "mode", "", "week or day (default picked from the terminal width)")

	export := &cobra.Command{
		Use:   "export-gcal",
		Short: "Create or update recurring Google Calendar events for every routine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.RoutineCLI.ExportGoogleCalendar(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "google calendar: %d created, %d updated\n", out.Created, out.Updated)
				return nil
			})
		},
	}

	routine.AddCommand(add, update, del, calendar, export)
	return routine
}

func routineFlags(cmd *cobra.Command, title, start, end, days, color *string) {
	cmd.Flags().StringVar(title, "title", "", "routine title")
	cmd.Flags().StringVar(start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(end, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(days, "days", "", "weekdays, e.g. mon,wed,fri")
	cmd.Flags().StringVar(color, "color", "", "red, blue, green, yellow, purple or pink (default blue)")
}
