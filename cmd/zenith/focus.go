package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zenith/internal/bootstrap"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	"zenith/internal/platform/markdown"
	pomodoroview "zenith/internal/ui/views/pomodoro"
)

func newPomodoroCmd(o *rootOptions) *cobra.Command {
	pomodoro := &cobra.Command{Use: "pomodoro", Short: "Focus timer"}

	var kind, taskID string
	run := &cobra.Command{
		Use:   "run",
		Short: "Run one session in the foreground, then record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.PomodoroCLI.Switch(ctx, kind); err != nil {
					return err
				}
				if taskID != "" {
					if err := app.PomodoroCLI.Link(ctx, taskID); err != nil {
						return err
					}
				}

				ctx, cancel := context.WithCancel(ctx)
				defer cancel()
				recorded := len(app.PomodoroCLI.History(ctx))
				stopHistory := app.PomodoroCLI.SubscribeHistory(func(logs []pomodorodto.LogOutput) {
					if len(logs) > recorded {
						cancel()
					}
				})
				defer stopHistory()
				out := cmd.OutOrStdout()
				stopState := app.PomodoroCLI.SubscribeState(func(s pomodorodto.TimerOutput) {
					_, _ = fmt.Fprintf(out, "\r%s %s ", s.Kind, pomodoroview.Clock(s.Remaining))
				})
				defer stopState()

				app.PomodoroCLI.Toggle(ctx)
				err := app.PomodoroCLI.Run(ctx)
				_, _ = fmt.Fprintln(out)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
	run.Flags().StringVar(&kind, "kind", "focus", "focus, short or long")
	run.Flags().StringVar(&taskID, "task", "", "task id to credit the session to")

	history := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				logs := app.PomodoroCLI.History(ctx)
				if len(logs) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, l := range logs {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", l.Timestamp.Format("2006-01-02 15:04"), l.Kind, pomodoroview.Clock(l.Duration), l.LinkedTaskTitle)
				}
				return nil
			})
		},
	}

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's sessions and focus time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				t := app.PomodoroCLI.Today(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d sessions, %d min focused\n", len(t.Sessions), t.FocusSeconds/60)
				return nil
			})
		},
	}

	pomodoro.AddCommand(run, history, today)
	return pomodoro
}

func newAskCmd(o *rootOptions) *cobra.Command {
	var showPrompt, plain bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant about your workspace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				if showPrompt {
					prompt, err := app.AssistantCLI.Prompt(ctx, question)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(out, prompt)
					return nil
				}
				onChunk := func(chunk string) { _, _ = fmt.Fprint(out, chunk) }
				if plain {
					onChunk = func(string) {}
				}
				answer, err := app.AssistantCLI.Ask(ctx, question, onChunk)
				if err != nil {
					return err
				}
				if plain {
					_, _ = fmt.Fprint(out, markdown.Plain(answer.Answer))
				}
				_, _ = fmt.Fprintln(out)
				if answer.Error != "" {
					return errors.New(answer.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "print the prompt that would be sent and exit")
	cmd.Flags().BoolVar(&plain, "plain", false, "wait for the full answer and strip markdown")
	return cmd
}
