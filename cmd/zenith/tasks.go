package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zenith/internal/bootstrap"
	goaldto "zenith/internal/modules/goal/dto"
	taskdto "zenith/internal/modules/task/dto"
)

func newTaskCmd(o *rootOptions) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Kanban tasks"}

	var board bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				if board {
					for _, col := range app.TaskCLI.Board(ctx) {
						_, _ = fmt.Fprintf(out, "%s (%d)\n", col.Status, len(col.Tasks))
						for _, t := range col.Tasks {
							_, _ = fmt.Fprintf(out, "  %s\t%s\t%s\n", t.ID, t.Priority, t.Title)
						}
					}
					return nil
				}
				tasks := app.TaskCLI.List(ctx)
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(out, "no tasks")
					return nil
				}
				for _, t := range tasks {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%d pomodoros\n", t.ID, t.Status, t.Priority, t.DueDate, t.Title, t.PomodorosDone)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&board, "board", false, "group by status column")

	var title, description, priority, due, status string
	add := &cobra.Command{
		Use:   "add --title <title>",
		Short: "Add a task to the Todo column",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				id, err := app.TaskCLI.Add(ctx, title, description, priority, due)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task added: %s\n", id)
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "task title")
	add.Flags().StringVar(&description, "description", "", "task description")
	add.Flags().StringVar(&priority, "priority", "", "Low, Medium or High (default Medium)")
	add.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change task fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", id); err != nil {
				return err
			}
			input := taskdto.UpdateInput{
				ID:          id,
				Title:       optional(cmd, "title", title),
				Description: optional(cmd, "description", description),
				Status:      optional(cmd, "status", status),
				Priority:    optional(cmd, "priority", priority),
				DueDate:     optional(cmd, "due", due),
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.TaskCLI.Update(ctx, input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "task updated")
				return nil
			})
		},
	}
	update.Flags().StringVar(&id, "id", "", "task id")
	update.Flags().StringVar(&title, "title", "", "task title")
	update.Flags().StringVar(&description, "description", "", "task description")
	update.Flags().StringVar(&status, "status", "", "Todo, Doing or Done")
	update.Flags().StringVar(&priority, "priority", "", "Low, Medium or High")
	update.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD), empty to clear")

	move := &cobra.Command{
		Use:   "move <id> <Todo|Doing|Done>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.TaskCLI.Move(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task moved to %s\n", args[1])
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.TaskCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "task deleted")
				return nil
			})
		},
	}

	task.AddCommand(list, add, update, move, del)
	return task
}

func newGoalCmd(o *rootOptions) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Goals grouped by horizon"}

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals with their progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				for _, group := range app.GoalCLI.ByHorizon(ctx) {
					_, _ = fmt.Fprintf(out, "%s term\n", group.Horizon)
					if len(group.Goals) == 0 {
						_, _ = fmt.Fprintln(out, "  (none)")
					}
					for _, g := range group.Goals {
						_, _ = fmt.Fprintf(out, "  %s\t%s\t%d/%d\t%.0f%%\t%s\n", g.ID, g.Title, g.Done, g.Total, g.Progress, g.TargetDate)
						for _, t := range g.Tasks {
							mark := " "
							if t.Done {
								mark = "x"
							}
							_, _ = fmt.Fprintf(out, "      [%s] %s\n", mark, t.Title)
						}
					}
				}
				return nil
			})
		},
	})

	var title, description, target, horizon string
	var taskIDs []string
	add := &cobra.Command{
		Use:   "add --title <title>",
		Short: "Add a goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				id, err := app.GoalCLI.Add(ctx, goaldto.GoalInput{
					Title:       title,
					Description: description,
					TargetDate:  target,
					Horizon:     horizon,
					TaskIDs:     taskIDs,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal added: %s\n", id)
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "goal title")
	add.Flags().StringVar(&description, "description", "", "goal description")
	add.Flags().StringVar(&target, "target", "", "target date (YYYY-MM-DD)")
	add.Flags().StringVar(&horizon, "horizon", "", "Short, Medium or Long (default Short)")
	add.Flags().StringSliceVar(&taskIDs, "task", nil, "linked task id (repeatable)")

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change goal fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", id); err != nil {
				return err
			}
			input := goaldto.UpdateInput{
				ID:          id,
				Title:       optional(cmd, "title", title),
				Description: optional(cmd, "description", description),
				TargetDate:  optional(cmd, "target", target),
				Horizon:     optional(cmd, "horizon", horizon),
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.Update(ctx, input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goal updated")
				return nil
			})
		},
	}
	update.Flags().StringVar(&id, "id", "", "goal id")
	update.Flags().StringVar(&title, "title", "", "goal title")
	update.Flags().StringVar(&description, "description", "", "goal description")
	update.Flags().StringVar(&target, "target", "", "target date (YYYY-MM-DD)")
	update.Flags().StringVar(&horizon, "horizon", "", "Short, Medium or Long")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "goal deleted")
				return nil
			})
		},
	}

	link := &cobra.Command{
		Use:   "link <goal-id> <task-id>",
		Short: "Link a task to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.Link(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "task linked")
				return nil
			})
		},
	}

	unlink := &cobra.Command{
		Use:   "unlink <goal-id> <task-id>",
		Short: "Unlink a task from a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.GoalCLI.Unlink(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "task unlinked")
				return nil
			})
		},
	}

	goal.AddCommand(add, update, del, link, unlink)
	return goal
}
