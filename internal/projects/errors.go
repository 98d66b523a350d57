package projects

import "errors"

var (
	ErrProjectNotFound = errors.New("Project not found")
	ErrAssetNotFound   = errors.New("Asset not found")
	ErrNotAssigned     = errors.New("Project is not assigned to this asset")
)
