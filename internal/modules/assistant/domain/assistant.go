package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "zenith/internal/platform/errors"
)

const Persona = "You are Zenith, a world-class productivity assistant built into the Zenith task manager. " +
	"Your job is to help the user analyse their data and offer summaries, recommendations and smart action plans. " +
	"Be concise, clear and useful. Use markdown to improve readability (lists with '*' and bold with '**'). " +
	"Do not invent data. Base your answers only on the context provided."

// FailureMessage is shown in place of provider errors.
const FailureMessage = "Sorry, I could not process your request. Please try again."

// Records the assistant reads from the rest of the workspace.
type (
	TaskRecord struct {
		Title    string
		Status   string
		Priority string
		DueDate  string
	}
	GoalRecord struct {
		Title      string
		Horizon    string
		TargetDate string
		TaskIDs    []string
	}
	TransactionRecord struct {
		Title    string
		Amount   float64
		Type     string
		Category string
		Date     string
	}
	ProspectRecord struct {
		ContactID    string
		Stage        string
		FollowUpDate string
	}
	ContactRecord struct {
		ID      string
		Name    string
		Company string
	}
)

type Snapshot struct {
	Tasks        []TaskRecord
	Goals        []GoalRecord
	Transactions []TransactionRecord
	Prospects    []ProspectRecord
	Contacts     []ContactRecord
}

// Summary is the field-pruned context sent to the model.
type Summary struct {
	Tasks         []TaskSummary        `json:"tasks"`
	Goals         []GoalSummary        `json:"goals"`
	Transactions  []TransactionSummary `json:"transactions"`
	Prospects     []ProspectSummary    `json:"prospects"`
	ContactsCount int                  `json:"contactsCount"`
}

type TaskSummary struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate,omitempty"`
}

type GoalSummary struct {
	Title            string `json:"title"`
	Horizon          string `json:"horizon"`
	TargetDate       string `json:"targetDate,omitempty"`
	LinkedTasksCount int    `json:"linkedTasksCount"`
}

type TransactionSummary struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

// ProspectSummary is joined to its contact; name and company are empty when
// the contact is gone.
type ProspectSummary struct {
	Name         string `json:"name,omitempty"`
	Company      string `json:"company,omitempty"`
	Stage        string `json:"stage"`
	FollowUpDate string `json:"followUpDate,omitempty"`
}

func BuildSummary(s Snapshot) Summary {
	out := Summary{
		Tasks:         make([]TaskSummary, 0, len(s.Tasks)),
		Goals:         make([]GoalSummary, 0, len(s.Goals)),
		Transactions:  make([]TransactionSummary, 0, len(s.Transactions)),
		Prospects:     make([]ProspectSummary, 0, len(s.Prospects)),
		ContactsCount: len(s.Contacts),
	}
	for _, t := range s.Tasks {
		out.Tasks = append(out.Tasks, TaskSummary(t))
	}
	for _, g := range s.Goals {
		out.Goals = append(out.Goals, GoalSummary{
			Title:            g.Title,
			Horizon:          g.Horizon,
			TargetDate:       g.TargetDate,
			LinkedTasksCount: len(g.TaskIDs),
		})
	}
	for _, tx := range s.Transactions {
		out.Transactions = append(out.Transactions, TransactionSummary(tx))
	}
	contacts := make(map[string]ContactRecord, len(s.Contacts))
	for _, c := range s.Contacts {
		contacts[c.ID] = c
	}
	for _, p := range s.Prospects {
		c := contacts[p.ContactID]
		out.Prospects = append(out.Prospects, ProspectSummary{
			Name:         c.Name,
			Company:      c.Company,
			Stage:        p.Stage,
			FollowUpDate: p.FollowUpDate,
		})
	}
	return out
}

// BuildPrompt assembles persona, data context and question.
func BuildPrompt(summary Summary, question string) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode assistant context: %w", err)
	}
	var b strings.Builder
	b.WriteString(Persona)
	b.WriteString("\n\nUser data context:\n")
	b.Write(data)
	b.WriteString("\n\nUser question:\n")
	b.WriteString(question)
	return b.String(), nil
}

func ValidateQuestion(question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is empty", apperrors.ErrInvalidInput)
	}
	return question, nil
}

// Answer is the accumulated model output. Error carries FailureMessage when
// the stream broke; Text then holds whatever arrived first.
type Answer struct {
	Text  string
	Error string
}

func (a Answer) Failed() bool { return a.Error != "" }
