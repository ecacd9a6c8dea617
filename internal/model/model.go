package model

// Summary holds the results of a run for display.
type Summary struct {
	Considered []string // every filename looked at in the header directory
	Generated  []string
	Skipped    []string
	Failed     []string
	Message    string
}
