package dto

type PreferencesOutput struct {
	Theme     string
	Accent    string
	AccentHex string
}

type ExportOutput struct {
	Filename string
	Data     []byte
	Keys     int
}

type ImportOutput struct {
	Written int
	Skipped int
}
