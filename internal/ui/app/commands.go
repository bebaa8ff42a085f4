package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	contactdto "zenith/internal/modules/contact/dto"
	financedto "zenith/internal/modules/finance/dto"
	goaldto "zenith/internal/modules/goal/dto"
	pipelinedto "zenith/internal/modules/pipeline/dto"
	routinedto "zenith/internal/modules/routine/dto"
	taskdto "zenith/internal/modules/task/dto"
)

var errNoSelection = errors.New("nothing selected")

// splitArgs splits "a | b | c" into trimmed fields.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// do runs a write off the update loop and reports the outcome in the status
// bar.
func do(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn(context.Background())
		return resultMsg{text: text, err: err}
	}
}

func fail(err error) tea.Cmd {
	return func() tea.Msg { return resultMsg{err: err} }
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" {
		return m, nil
	}
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	args := splitArgs(rest)
	d := m.deps

	switch name {
	case "task:add":
		return m, do(func(ctx context.Context) (string, error) {
			_, err := d.Tasks.Add(ctx, arg(args, 0), "", arg(args, 1), arg(args, 2))
			return "task added", err
		})
	case "task:move":
		card, ok := m.tasks.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		return m, do(func(ctx context.Context) (string, error) {
			return "moved " + card.Title + " to " + rest, d.Tasks.Move(ctx, card.ID, rest)
		})
	case "task:delete":
		card, ok := m.tasks.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		return m, do(func(ctx context.Context) (string, error) {
			return "deleted " + card.Title, d.Tasks.Delete(ctx, card.ID)
		})

	case "contact:add":
		return m, do(func(ctx context.Context) (string, error) {
			c, err := d.Contacts.Add(ctx, contactdto.ContactInput{
				Name:    arg(args, 0),
				Company: arg(args, 1),
				Email:   arg(args, 2),
				Phone:   arg(args, 3),
			})
			return "added " + c.Name, err
		})
	case "contact:delete":
		row, ok := m.contacts.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		return m, do(func(ctx context.Context) (string, error) {
			return "deleted " + row.Text, d.Contacts.Delete(ctx, row.ID)
		})

	case "prospect:promote":
		row, ok := m.contacts.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		return m, do(func(ctx context.Context) (string, error) {
			_, err := d.Pipeline.Promote(ctx, row.ID, rest, "", "")
			return row.Text + " added to the pipeline", err
		})
	case "prospect:move", "prospect:followup", "prospect:delete":
		card, ok := m.pipeline.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		return m, do(func(ctx context.Context) (string, error) {
			switch name {
			case "prospect:move":
				return "moved " + card.Title + " to " + rest, d.Pipeline.MoveProspect(ctx, card.ID, rest)
			case "prospect:followup":
				return "follow-up set for " + card.Title, d.Pipeline.UpdateProspect(ctx, pipelinedto.UpdateProspectInput{ID: card.ID, FollowUpDate: &rest})
			}
			return "removed " + card.Title + " from the pipeline", d.Pipeline.DeleteProspect(ctx, card.ID)
		})

	case "stage:init":
		return m, do(func(ctx context.Context) (string, error) {
			n, err := d.Pipeline.SeedStages(ctx)
			if n == 0 && err == nil {
				return "stages already exist", nil
			}
			return fmt.Sprintf("created %d stages", n), err
		})
	case "stage:add":
		return m, do(func(ctx context.Context) (string, error) {
			return "stage " + rest + " added", d.Pipeline.AddStage(ctx, rest)
		})
	case "stage:rename":
		return m, do(func(ctx context.Context) (string, error) {
			return "stage renamed", d.Pipeline.RenameStage(ctx, arg(args, 0), arg(args, 1))
		})
	case "stage:delete":
		return m, do(func(ctx context.Context) (string, error) {
			out, err := d.Pipeline.DeleteStage(ctx, rest)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("deleted %s, moved %d prospects to %s", out.Stage, out.Reassigned, out.Fallback), nil
		})

	case "routine:add":
		return m, do(func(ctx context.Context) (string, error) {
			days, err := d.Routines.ParseDays(arg(args, 3))
			if err != nil {
				return "", err
			}
			_, err = d.Routines.Add(ctx, routinedto.RoutineInput{
				Title:     arg(args, 0),
				StartTime: arg(args, 1),
				EndTime:   arg(args, 2),
				Days:      days,
				Color:     arg(args, 4),
			})
			return "routine added", err
		})
	case "routine:delete":
		return m, do(func(ctx context.Context) (string, error) {
			for _, r := range d.Routines.List(ctx) {
				if strings.EqualFold(r.Title, rest) {
					return "deleted " + r.Title, d.Routines.Delete(ctx, r.ID)
				}
			}
			return "", fmt.Errorf("no routine titled %q", rest)
		})
	case "routine:export":
		return m, do(func(ctx context.Context) (string, error) {
			out, err := d.Routines.ExportGoogleCalendar(ctx)
			return fmt.Sprintf("google calendar: %d created, %d updated", out.Created, out.Updated), err
		})
	case "calendar:next", "calendar:prev", "calendar:today":
		step := 7
		if m.calendar.Mode == "day" {
			step = 1
		}
		switch name {
		case "calendar:next":
			m.calendarDate = m.calendarDate.AddDate(0, 0, step)
		case "calendar:prev":
			m.calendarDate = m.calendarDate.AddDate(0, 0, -step)
		default:
			m.calendarDate = d.Now()
		}
		m.reload(SourceRoutines)
		return m, nil

	case "goal:add":
		horizon, titleAndDate, _ := strings.Cut(rest, " ")
		ga := splitArgs(titleAndDate)
		return m, do(func(ctx context.Context) (string, error) {
			_, err := d.Goals.Add(ctx, goaldto.GoalInput{Horizon: horizon, Title: arg(ga, 0), TargetDate: arg(ga, 1)})
			return "goal added", err
		})
	case "goal:link", "goal:unlink", "goal:delete":
		row, ok := m.goals.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		if name == "goal:delete" {
			return m, do(func(ctx context.Context) (string, error) {
				return "deleted " + row.Text, d.Goals.Delete(ctx, row.ID)
			})
		}
		return m, do(func(ctx context.Context) (string, error) {
			taskID, title, err := m.findTask(rest, d.Tasks.List(ctx))
			if err != nil {
				return "", err
			}
			if name == "goal:link" {
				return "linked " + title + " to " + row.Text, d.Goals.Link(ctx, row.ID, taskID)
			}
			return "unlinked " + title + " from " + row.Text, d.Goals.Unlink(ctx, row.ID, taskID)
		})

	case "finance:add":
		fields := strings.Fields(rest)
		if len(fields) < 4 {
			return m, fail(errors.New("usage: finance:add <income|expense> <amount> <category> <title>"))
		}
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return m, fail(fmt.Errorf("amount %q is not a number", fields[1]))
		}
		input := financedto.TransactionInput{
			Type:     fields[0],
			Amount:   amount,
			Category: fields[2],
			Title:    strings.Join(fields[3:], " "),
			Date:     d.Now().Format(time.DateOnly),
		}
		return m, do(func(ctx context.Context) (string, error) {
			_, err := d.Finance.Add(ctx, input)
			return "transaction added", err
		})
	case "finance:delete":
		row, ok := m.txs.Selected()
		if !ok {
			return m, fail(errNoSelection)
		}
		return m, do(func(ctx context.Context) (string, error) {
			return "transaction deleted", d.Finance.Delete(ctx, row.ID)
		})
	case "finance:period":
		if rest != "month" && rest != "year" {
			return m, fail(errors.New("period must be month or year"))
		}
		m.period = rest
		m.reload(SourceTransactions)
		return m, nil
	case "finance:next", "finance:prev":
		n := 1
		if name == "finance:prev" {
			n = -1
		}
		if m.period == "year" {
			m.anchor = m.anchor.AddDate(n, 0, 0)
		} else {
			m.anchor = m.anchor.AddDate(0, n, 0)
		}
		m.reload(SourceTransactions)
		return m, nil

	case "pomodoro:toggle":
		m.timer = d.Pomodoro.Toggle(context.Background())
		return m, nil
	case "pomodoro:reset":
		m.timer = d.Pomodoro.Reset(context.Background())
		return m, nil
	case "pomodoro:switch":
		state, err := d.Pomodoro.Switch(context.Background(), rest)
		if err != nil {
			return m, fail(err)
		}
		m.timer = state
		return m, nil
	case "pomodoro:unlink":
		m.timer = d.Pomodoro.Unlink(context.Background())
		return m, nil
	case "pomodoro:link":
		return m, do(func(ctx context.Context) (string, error) {
			taskID, title, err := m.findTask(rest, d.Tasks.Incomplete(ctx))
			if err != nil {
				return "", err
			}
			return "working on " + title, d.Pomodoro.Link(ctx, taskID)
		})
	case "pomodoro:finish":
		return m, do(func(ctx context.Context) (string, error) {
			return "linked task marked done", d.Pomodoro.FinishLinkedTask(ctx)
		})

	case "ask":
		m.activeTab = tabAssistant
		if !m.chat.Begin(rest) {
			return m, fail(errors.New("the assistant is still answering"))
		}
		return m, m.askCmd(rest)

	case "theme":
		return m, m.prefsCmd("theme set to "+rest, func(ctx context.Context) error {
			_, err := d.Settings.Theme(ctx, rest)
			return err
		})
	case "accent":
		return m, m.prefsCmd("accent set to "+rest, func(ctx context.Context) error {
			_, err := d.Settings.Accent(ctx, rest)
			return err
		})
	case "settings:export":
		return m, do(func(ctx context.Context) (string, error) {
			out, err := d.Settings.Export(ctx)
			if err != nil {
				return "", err
			}
			path := rest
			if path == "" {
				path = out.Filename
			}
			if err := os.WriteFile(path, out.Data, 0o644); err != nil {
				return "", fmt.Errorf("write backup: %w", err)
			}
			return fmt.Sprintf("exported %d keys to %s", out.Keys, path), nil
		})
	case "settings:import":
		return m, m.prefsCmd("settings imported from "+rest, func(ctx context.Context) error {
			data, err := os.ReadFile(rest)
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			_, err = d.Settings.Import(ctx, data)
			return err
		})
	case "settings:clear":
		return m, m.prefsCmd("local settings cleared", d.Settings.Clear)
	}
	return m, fail(fmt.Errorf("unknown command: %s", name))
}

// prefsCmd applies a settings write and then re-reads the preferences so the
// styles follow.
func (m Model) prefsCmd(text string, write func(ctx context.Context) error) tea.Cmd {
	settings := m.deps.Settings
	return func() tea.Msg {
		ctx := context.Background()
		if err := write(ctx); err != nil {
			return prefsMsg{err: err}
		}
		return prefsMsg{prefs: settings.Show(ctx), text: text}
	}
}

// findTask resolves a task among candidates by exact title, then by unique
// title prefix. An empty title means the selected Kanban card, which must be
// one of the candidates.
func (m Model) findTask(title string, candidates []taskdto.TaskOutput) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		card, ok := m.tasks.Selected()
		if !ok {
			return "", "", errNoSelection
		}
		for _, t := range candidates {
			if t.ID == card.ID {
				return t.ID, t.Title, nil
			}
		}
		return "", "", fmt.Errorf("%q cannot be used here", card.Title)
	}
	var prefixed []taskdto.TaskOutput
	for _, t := range candidates {
		if strings.EqualFold(t.Title, title) {
			return t.ID, t.Title, nil
		}
		if strings.HasPrefix(strings.ToLower(t.Title), strings.ToLower(title)) {
			prefixed = append(prefixed, t)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0].ID, prefixed[0].Title, nil
	}
	return "", "", fmt.Errorf("no single task matches %q", title)
}

// askCmd streams the answer through ch. Sends give up once the model's
// context is cancelled, so a quit never strands the stream.
func (m Model) askCmd(question string) tea.Cmd {
	ctx, assistant := m.deps.Context, m.deps.Assistant
	ch := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) {
		select {
		case ch <- msg:
		case <-ctx.Done():
		}
	}
	go func() {
		defer close(ch)
		out, err := assistant.Ask(ctx, question, func(chunk string) {
			send(askChunkMsg{text: chunk, ch: ch})
		})
		send(askDoneMsg{out: out, err: err})
	}()
	return waitFor(ch)
}
