package policy

import "errors"

var (
	ErrFailedToReadFile  = errors.New("policy: failed to read file")
	ErrFailedToParseYAML = errors.New("policy: failed to parse YAML content")
	ErrInvalidPolicy     = errors.New("policy: invalid policy")
)
