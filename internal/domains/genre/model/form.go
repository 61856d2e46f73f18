package model

import (
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validation"
)

// NameMaxLength matches genres.name VARCHAR(100); the limit applies to the escaped name
const NameMaxLength = 100

// GenreForm is the create form submission
type GenreForm struct {
	Name string `form:"name" json:"name"`
}

func (f GenreForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Name,
			ozzo.Required.Error("Genre name required"),
			validation.EscapedMaxLength(NameMaxLength, "Genre name is too long"),
		),
	)
}

// Bind trims, validates, then escapes the name
func (f *GenreForm) Bind() (*Genre, []validation.FieldError, error) {
	f.Name = strings.TrimSpace(f.Name)

	fieldErrs, err := validation.FieldErrors(f.Validate(), map[string]string{"name": f.Name}, "name")
	if err != nil {
		return nil, nil, err
	}

	return &Genre{Name: utils.Escape(f.Name)}, fieldErrs, nil
}
