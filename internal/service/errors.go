package service

import "errors"

// ErrInvalidArgument wraps bad query or body values; handlers answer 400
var ErrInvalidArgument = errors.New("invalid argument")
