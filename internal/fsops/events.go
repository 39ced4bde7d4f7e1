// Package fsops is the filesystem boundary: batch renames, recursive
// listing, and batch deletes, with optional progress streaming. The
// transformation engine never touches it; callers hand it pairs computed by
// a plan and feed the outcomes back into their own state.
package fsops

// Phase tags a streamed progress event.
type Phase int

const (
	Started Phase = iota
	Progress
	Completed
)

func (p Phase) String() string {
	switch p {
	case Started:
		return "started"
	case Progress:
		return "progress"
	default:
		return "completed"
	}
}

// RenameEvent is one progress update from a streaming batch rename. Started
// carries Total, Progress carries Current/Total/CurrentPath, Completed
// carries the Successful and Failed tallies.
type RenameEvent struct {
	Phase       Phase
	Current     int
	Total       int
	CurrentPath string
	Successful  int
	Failed      int
}

// ListEvent is one progress update from a streaming recursive listing.
// Started carries Base, Progress carries CurrentDir/FilesFound, Completed
// carries the final FilesFound.
type ListEvent struct {
	Phase      Phase
	Base       string
	CurrentDir string
	FilesFound int
}
