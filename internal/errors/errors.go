package errors

import "fmt"

type ErrorType string

const (
    ErrorTypeConfig ErrorType = "CONFIG"
    ErrorTypeVCS    ErrorType = "VCS"
)

type Error struct {
    Type    ErrorType `json:"type"`
    Message string    `json:"message"`
    Err     error     `json:"-"`
}

func (e *Error) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("%s: %v", e.Message, e.Err)
    }
    return e.Message
}

func (e *Error) Unwrap() error {
    return e.Err
}

func ConfigError(message string, err error) *Error {
    return &Error{
        Type:    ErrorTypeConfig,
        Message: message,
        Err:     err,
    }
}

func VCSError(message string, err error) *Error {
    return &Error{
        Type:    ErrorTypeVCS,
        Message: message,
        Err:     err,
    }
}

// FileError records a single file that failed during a sanitization pass.
// Per-file failures are collected into the run summary instead of aborting
// the run.
type FileError struct {
    Path string `json:"path"`
    Err  error  `json:"-"`
}

func (e *FileError) Error() string {
    return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
    return e.Err
}
