package dto

import "time"

type PromoteInput struct {
	ContactID    string
	Stage        string
	Notes        string
	FollowUpDate string
}

type UpdateProspectInput struct {
	ID           string
	Stage        *string
	Notes        *string
	FollowUpDate *string
}

type ProspectOutput struct {
	ID           string
	CreatedAt    time.Time
	ContactID    string
	ContactName  string
	Company      string
	Orphaned     bool
	Stage        string
	Notes        string
	FollowUpDate string
}

type LaneOutput struct {
	Stage     string
	Prospects []ProspectOutput
}

type StageOutput struct {
	ID   string
	Name string
}

type DeleteStageOutput struct {
	Stage         string
	Fallback      string
	Reassigned    int
	StagesDeleted int
}
