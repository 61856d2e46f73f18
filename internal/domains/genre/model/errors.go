package model

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound         = "GENRE_NOT_FOUND"
	CodeNameExists       = "GENRE_NAME_EXISTS"
	CodeHasBooks         = "GENRE_HAS_BOOKS"
	CodeListFailed       = "LIST_GENRE_ERROR"
	CodeGetFailed        = "GET_GENRE_ERROR"
	CodeListBooksFailed  = "LIST_GENRE_BOOKS_ERROR"
	CodeCreateFailed     = "CREATE_GENRE_ERROR"
	CodeDeleteFailed     = "DELETE_GENRE_ERROR"
	CodeValidationFailed = "VALIDATE_GENRE_ERROR"
)

// GenreError định nghĩa base error cho genre domain
type GenreError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *GenreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *GenreError) Unwrap() error {
	return e.Err
}

func NewGenreNotFound() *GenreError {
	return &GenreError{Code: CodeNotFound, Message: "Genre not found", Status: http.StatusNotFound}
}

func NewGenreNameExists(name string, err error) *GenreError {
	return &GenreError{
		Code:    CodeNameExists,
		Message: fmt.Sprintf("Genre '%s' already exists", name),
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func NewGenreHasBooks() *GenreError {
	return &GenreError{
		Code:    CodeHasBooks,
		Message: "Cannot delete genre with associated books",
		Status:  http.StatusConflict,
	}
}

func newInternal(code, message string, err error) *GenreError {
	return &GenreError{Code: code, Message: message, Status: http.StatusInternalServerError, Err: err}
}

func NewListGenreError(err error) *GenreError {
	return newInternal(CodeListFailed, "Failed to list genres", err)
}

func NewGetGenreError(err error) *GenreError {
	return newInternal(CodeGetFailed, "Failed to get genre", err)
}

func NewListGenreBooksError(err error) *GenreError {
	return newInternal(CodeListBooksFailed, "Failed to list books of genre", err)
}

func NewCreateGenreError(err error) *GenreError {
	return newInternal(CodeCreateFailed, "Failed to create genre", err)
}

func NewDeleteGenreError(err error) *GenreError {
	return newInternal(CodeDeleteFailed, "Failed to delete genre", err)
}

func NewValidationError(err error) *GenreError {
	return newInternal(CodeValidationFailed, "Failed to validate genre", err)
}

func IsNotFound(err error) bool {
	return GetErrorCode(err) == CodeNotFound
}

func IsNameExists(err error) bool {
	return GetErrorCode(err) == CodeNameExists
}

func IsHasBooks(err error) bool {
	return GetErrorCode(err) == CodeHasBooks
}

func GetErrorCode(err error) string {
	var gErr *GenreError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return "UNKNOWN_ERROR"
}

// MapErrorToHTTP chuyển error sang (status, message, code) cho error page
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	var gErr *GenreError
	if errors.As(err, &gErr) {
		status := gErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, gErr.Message, gErr.Code
	}

	return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
}
