package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrBadModelOutput indicates the model reply could not be parsed into a result.
var ErrBadModelOutput = errors.New("unparseable model output")

// ErrNotConfigured indicates no provider is wired for the requested feature
// (deployments running the offline analyzer without any model API key).
var ErrNotConfigured = errors.New("ai provider not configured")
