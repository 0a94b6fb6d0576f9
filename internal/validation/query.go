package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cherdeman/COPA-Project/internal/errors"
)

// DateFilter holds the optional year and month shared by every query
type DateFilter struct {
	Year  *int `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Month *int `json:"month" validate:"omitempty,gte=1,lte=12"`
}

// TopCategoriesQuery parameters for the top-K categories query
type TopCategoriesQuery struct {
	DateFilter
	Beat string `json:"beat" validate:"required,beat"`
	K    int    `json:"k" validate:"gte=0"`
}

// VolumeQuery parameters for the characteristic volume queries
type VolumeQuery struct {
	DateFilter
	Entity         string `json:"entity" validate:"required,entity"`
	Characteristic string `json:"by" validate:"required"`
	Complaints     bool   `json:"complaints"`
}

// CrossQuery parameters for the officer x complainant query
type CrossQuery struct {
	DateFilter
	OfficerBy     string `json:"officer_by" validate:"required"`
	ComplainantBy string `json:"complainant_by" validate:"required"`
}

// QueryValidator validates query parameters using struct tags
type QueryValidator struct {
	validate *validator.Validate
}

// NewQueryValidator creates a validator with the custom tags registered
func NewQueryValidator() *QueryValidator {
	v := validator.New()

	_ = v.RegisterValidation("beat", isBeatCode)
	_ = v.RegisterValidation("entity", isEntity)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &QueryValidator{validate: v}
}

// Validate checks q and returns an INVALID_ARGUMENT error describing every
// failed field
func (qv *QueryValidator) Validate(q interface{}) error {
	err := qv.validate.Struct(q)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewInvalidArgumentError(err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := describe(fe)
		msgs = append(msgs, msg)
		fields[fe.Field()] = msg
	}

	return errors.NewInvalidArgumentError(strings.Join(msgs, "; ")).
		WithContext("fields", fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "beat":
		return fmt.Sprintf("%s must be a beat code without separators", fe.Field())
	case "entity":
		return fmt.Sprintf("%s must be complainant or officer", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// isBeatCode rejects codes that could never match a single beat
func isBeatCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return code == strings.TrimSpace(code) && !strings.Contains(code, "|")
}

func isEntity(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "complainant", "complainants", "officer", "officers":
		return true
	}
	return false
}
