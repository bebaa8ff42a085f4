package domain

// ExportReport counts what a calendar export did.
type ExportReport struct {
	Created int
	Updated int
}
