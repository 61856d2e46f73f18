package model

import (
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/samber/lo"

	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validation"
)

// ImprintMaxLength matches book_instances.imprint VARCHAR(255), counted after escaping
const ImprintMaxLength = 255

// formFields is the order errors are reported in
var formFields = []string{"book", "imprint", "status", "due_back"}

// BookInstanceForm is the create/update form submission
type BookInstanceForm struct {
	Book    string `form:"book" json:"book"`
	Imprint string `form:"imprint" json:"imprint"`
	Status  string `form:"status" json:"status"`
	DueBack string `form:"due_back" json:"due_back"`
}

// Validate runs on trimmed values
func (f BookInstanceForm) Validate() error {
	statuses := lo.Map(Statuses, func(s Status, _ int) interface{} { return string(s) })

	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Book,
			ozzo.Required.Error("Book must be specified"),
			is.UUID.Error("Book must be specified"),
		),
		ozzo.Field(&f.Imprint,
			ozzo.Required.Error("Imprint must be specified"),
			validation.EscapedMaxLength(ImprintMaxLength, "Imprint is too long"),
		),
		ozzo.Field(&f.Status,
			ozzo.In(statuses...).Error("Invalid status"),
		),
		ozzo.Field(&f.DueBack,
			validation.ISO8601Date("Invalid date"),
		),
	)
}

func (f *BookInstanceForm) values() map[string]string {
	return map[string]string{
		"book":     f.Book,
		"imprint":  f.Imprint,
		"status":   f.Status,
		"due_back": f.DueBack,
	}
}

// Bind runs the single validation + sanitization pass: trim, default the
// status, validate, then escape and coerce. The returned instance always
// carries the submitted values so a failed form can be re-rendered.
func (f *BookInstanceForm) Bind() (*BookInstance, []validation.FieldError, error) {
	f.Book = strings.TrimSpace(f.Book)
	f.Imprint = strings.TrimSpace(f.Imprint)
	f.Status = strings.TrimSpace(f.Status)
	f.DueBack = strings.TrimSpace(f.DueBack)
	if f.Status == "" {
		f.Status = string(DefaultStatus)
	}

	fieldErrs, err := validation.FieldErrors(f.Validate(), f.values(), formFields...)
	if err != nil {
		return nil, nil, err
	}

	instance := &BookInstance{
		BookID:  utils.ParseStringToUUID(f.Book),
		Imprint: utils.Escape(f.Imprint),
		Status:  Status(utils.Escape(f.Status)),
		DueBack: toDate(f.DueBack),
	}

	return instance, fieldErrs, nil
}

// toDate returns nil for empty or unparsable input
func toDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := validation.ParseISO8601(s)
	if err != nil {
		return nil
	}
	return &t
}
