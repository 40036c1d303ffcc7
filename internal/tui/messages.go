package tui

// Messages sent into the progress model by the command driving a run.

// EntryStartedMsg announces work beginning on one outline entry.
type EntryStartedMsg struct {
	Index int
	Total int
	Order int
	Title string
}

// EntryWrittenMsg reports the entry's lesson file landing on disk.
type EntryWrittenMsg struct {
	Index int
	Path  string
}

// RunDoneMsg ends the program; Err is nil on full success.
type RunDoneMsg struct {
	Err error
}
