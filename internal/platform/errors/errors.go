package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateStage = errors.New("stage already exists")
	ErrLastStage      = errors.New("cannot delete the last remaining stage")
	ErrTaskLinked     = errors.New("a task is already linked")
	ErrInvalidBackup  = errors.New("invalid backup file")
	ErrStoreClosed    = errors.New("store is closed")
	ErrNotConfigured  = errors.New("not configured")
)
