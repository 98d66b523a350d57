package notes

import "errors"

var (
	ErrNoteNotFound    = errors.New("Note not found")
	ErrAssetNotFound   = errors.New("Asset not found")
	ErrProjectNotFound = errors.New("Project not found")
	ErrCaseNotFound    = errors.New("Case not found")
)
