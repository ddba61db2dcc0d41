package coordinate

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("coordinate: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("coord"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		return v.Interface().(Revision).String()
	}, Revision{})

	mustRegister("cdtype", func(fl validator.FieldLevel) bool {
		return Type(fl.Field().String()).Valid()
	})
	mustRegister("cdprovider", func(fl validator.FieldLevel) bool {
		return Provider(fl.Field().String()).Valid()
	})
	mustRegister("segment", func(fl validator.FieldLevel) bool {
		return validSegment(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// validSegment reports whether s can appear between two separators. The
// service percent-encodes anything unusual, so whitespace, control characters
// and the separator itself are rejected, as are malformed escapes and dot
// segments that a URL path would collapse.
func validSegment(s string) bool {
	for _, r := range s {
		if r == '/' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}

	unescaped, err := url.PathUnescape(s)
	if err != nil {
		return false
	}

	return unescaped != "." && unescaped != ".."
}

// FieldError represents a single validation error for a specific field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface, returning a human-readable
// summary of all field errors.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

// Is lets callers match validation failures against [ErrInvalidCoordinate].
func (fe FieldErrors) Is(target error) bool {
	return target == ErrInvalidCoordinate
}

// check runs the struct tags declared on val.
func check(val any) error {
	if err := validate.Struct(val); err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			field := FieldError{
				Field: verror.Field(),
				Err:   customErrForTag(verror.Tag(), verror),
			}
			fields = append(fields, field)
		}
		return fields
	}

	return nil
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return "This field is required"
	case "cdtype":
		return fmt.Sprintf("unknown type '%v'", verror.Value())
	case "cdprovider":
		return fmt.Sprintf("unknown provider '%v'", verror.Value())
	case "segment":
		return "must not contain '/', whitespace, control characters or bad escapes, and must not be a dot segment"
	default:
		return verror.Translate(translator)
	}
}
