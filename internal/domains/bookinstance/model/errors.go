package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeNotFound         = "BOOK_INSTANCE_NOT_FOUND"
	CodeInvalidBook      = "INVALID_BOOK_REFERENCE"
	CodeListFailed       = "LIST_BOOK_INSTANCE_ERROR"
	CodeListBooksFailed  = "LIST_BOOK_OPTIONS_ERROR"
	CodeGetFailed        = "GET_BOOK_INSTANCE_ERROR"
	CodeCreateFailed     = "CREATE_BOOK_INSTANCE_ERROR"
	CodeUpdateFailed     = "UPDATE_BOOK_INSTANCE_ERROR"
	CodeDeleteFailed     = "DELETE_BOOK_INSTANCE_ERROR"
	CodeValidationFailed = "VALIDATE_BOOK_INSTANCE_ERROR"
)

// BookInstanceError định nghĩa base error cho bookinstance domain
type BookInstanceError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *BookInstanceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *BookInstanceError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewBookInstanceNotFound is returned by detail pages ("Ebook copy not found")
// and the update form ("No book instance found").
func NewBookInstanceNotFound(message string) *BookInstanceError {
	return &BookInstanceError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// NewInvalidBookReference means the referenced book does not exist
func NewInvalidBookReference(err error) *BookInstanceError {
	return &BookInstanceError{
		Code:    CodeInvalidBook,
		Message: "Book must reference an existing book",
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

func newInternal(code, message string, err error) *BookInstanceError {
	return &BookInstanceError{Code: code, Message: message, Status: http.StatusInternalServerError, Err: err}
}

func NewListBookInstanceError(err error) *BookInstanceError {
	return newInternal(CodeListFailed, "Failed to list book instances", err)
}

func NewListBooksError(err error) *BookInstanceError {
	return newInternal(CodeListBooksFailed, "Failed to list books", err)
}

func NewGetBookInstanceError(err error) *BookInstanceError {
	return newInternal(CodeGetFailed, "Failed to get book instance", err)
}

func NewCreateBookInstanceError(err error) *BookInstanceError {
	return newInternal(CodeCreateFailed, "Failed to create book instance", err)
}

func NewUpdateBookInstanceError(err error) *BookInstanceError {
	return newInternal(CodeUpdateFailed, "Failed to update book instance", err)
}

func NewDeleteBookInstanceError(err error) *BookInstanceError {
	return newInternal(CodeDeleteFailed, "Failed to delete book instance", err)
}

func NewValidationError(err error) *BookInstanceError {
	return newInternal(CodeValidationFailed, "Failed to validate book instance", err)
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsNotFound(err error) bool {
	return GetErrorCode(err) == CodeNotFound
}

func IsInvalidBookReference(err error) bool {
	return GetErrorCode(err) == CodeInvalidBook
}

func GetErrorCode(err error) string {
	var biErr *BookInstanceError
	if errors.As(err, &biErr) {
		return biErr.Code
	}
	return "UNKNOWN_ERROR"
}

// MapErrorToHTTP chuyển error sang (status, message, code) cho error page
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	var biErr *BookInstanceError
	if errors.As(err, &biErr) {
		status := biErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, biErr.Message, biErr.Code
	}

	return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
}
