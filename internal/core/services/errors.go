package services

import "errors"

// Task errors
var (
	ErrTaskNotFound     = errors.New("task: not found")
	ErrTaskNotResumable = errors.New("task: not in a resumable status")
	ErrTaskWrongType    = errors.New("task: unknown task type")
	ErrTaskLocked       = errors.New("task: already being processed")
)

// Project errors
var (
	ErrProjectNotFound      = errors.New("project: not found")
	ErrProjectAlreadyExists = errors.New("project: active project with this name already exists")
	ErrProjectInvalidInput  = errors.New("project: invalid input")
)

// Subdomain errors
var (
	ErrSubdomainNotFound     = errors.New("subdomain: not found")
	ErrSubdomainInvalidInput = errors.New("subdomain: invalid input")
)

// Vulnerability errors
var (
	ErrVulnerabilityNotFound = errors.New("vulnerability: not found")
	ErrVulnerabilityBadState = errors.New("vulnerability: invalid status")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrSessionInvalid     = errors.New("auth: session invalid or expired")
)
