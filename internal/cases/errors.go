package cases

import "errors"

var (
	ErrCaseNotFound    = errors.New("Case not found")
	ErrAssetNotFound   = errors.New("Asset not found")
	ErrProjectNotFound = errors.New("Project not found")
)
