package entities

import "errors"

// Error kinds raised while resolving a branch. Callers classify them with errors.Is;
// the wrapping message always carries the offending value.
var (
	ErrMalformedReference    = errors.New("malformed component reference")
	ErrMalformedDocument     = errors.New("malformed document")
	ErrInvalidURL            = errors.New("invalid artifact URL")
	ErrAmbiguousDefinition   = errors.New("ambiguous build definition")
	ErrDefinitionNotFound    = errors.New("build definition not found")
	ErrBuildNotFound         = errors.New("build not found")
	ErrCredentialUnavailable = errors.New("credential unavailable")
	ErrFileNotFound          = errors.New("file not found")
	ErrRepositoryNotFound    = errors.New("repository not found")
)
