package dto

type AskOutput struct {
	Question string
	Answer   string
	Error    string
}
