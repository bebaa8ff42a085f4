package dto

import "time"

type RoutineInput struct {
	Title     string
	StartTime string
	EndTime   string
	Days      []int
	Color     string
}

type UpdateInput struct {
	ID        string
	Title     *string
	StartTime *string
	EndTime   *string
	Days      *[]int
	Color     *string
}

type RoutineOutput struct {
	ID        string
	CreatedAt time.Time
	Title     string
	StartTime string
	EndTime   string
	Days      []int
	Color     string
	ColorName string
}

// CalendarQuery asks for the grid around Date. An empty Mode is picked from
// Width. Unit is the size of one hour in the caller's rendering units.
type CalendarQuery struct {
	Date  time.Time
	Width int
	Mode  string
	Unit  float64
}

type CalendarOutput struct {
	Mode      string
	StartHour int
	Rows      int
	Days      []CalendarDay
}

type CalendarDay struct {
	Date   time.Time
	Events []PlacedEvent
}

type PlacedEvent struct {
	RoutineOutput
	Top    float64
	Height float64
}

type ExportOutput struct {
	Created int
	Updated int
}
