package dto

import "time"

type ContactInput struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Notes   string
}

type UpdateInput struct {
	ID      string
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Notes   *string
}

type ContactOutput struct {
	ID        string
	CreatedAt time.Time
	Name      string
	Company   string
	Email     string
	Phone     string
	Notes     string
}
