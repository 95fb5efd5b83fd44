package config

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("configuration error")

// ConfigurationError names a required setting that is missing or invalid.
type ConfigurationError struct {
	Field  string
	Env    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	if e.Env == "" {
		return fmt.Sprintf("%s: %s", e.Field, reason)
	}
	return fmt.Sprintf("%s (%s): %s", e.Field, e.Env, reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
