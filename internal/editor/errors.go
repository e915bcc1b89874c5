package editor

import "errors"

var (
	// ErrSectionNotFound means no paragraph contains the section marker.
	ErrSectionNotFound = errors.New("section header not found")
	// ErrFirstEntryNotFound means the section exists but no entry title
	// could be found beneath it.
	ErrFirstEntryNotFound = errors.New("first project entry not found")
	// ErrEmptyTitle means the replacement title is blank.
	ErrEmptyTitle = errors.New("replacement title is empty")
)

// UserMessage describes the structural problem behind err in terms a resume
// owner can act on. It returns "" for errors it does not recognise.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrSectionNotFound):
		return `Couldn't find a "PROJECT EXPERIENCE" heading. Add that heading above your projects and try again.`
	case errors.Is(err, ErrFirstEntryNotFound):
		return "Found the PROJECT EXPERIENCE heading but no project beneath it. Make sure the first project has a bold title line (or a line with | or – separators) followed by bullets."
	case errors.Is(err, ErrEmptyTitle):
		return "The new project title is empty."
	default:
		return ""
	}
}

// IsStructural reports whether err comes from the resume layout rather
// than from I/O or the caller.
func IsStructural(err error) bool {
	return errors.Is(err, ErrSectionNotFound) || errors.Is(err, ErrFirstEntryNotFound)
}
