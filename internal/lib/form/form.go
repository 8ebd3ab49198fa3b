// Package form decodes url-encoded request bodies into structs and
// validates them, producing one message per invalid field.
package form

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	ajg "github.com/ajg/form"
	"github.com/go-playground/validator/v10"
)

var ErrMalformed = errors.New("malformed form data")

// Cleaner is implemented by forms that normalize their values before validation.
type Cleaner interface {
	Clean()
}

// Errors maps a field name, as used in the form, to its message.
// Errors of the form as a whole are stored under NonField.
type Errors map[string]string

const NonField = "__all__"

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("form")
		if tag == "" {
			tag = fld.Tag.Get("json")
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Decode reads the request body into dst. Keys dst does not declare are
// dropped, so a client cannot set fields the form does not expose.
func Decode(r *http.Request, dst any) error {
	const op = "lib.form.Decode"

	d := ajg.NewDecoder(r.Body)
	d.IgnoreUnknownKeys(true)

	if err := d.Decode(dst); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformed, err)
	}

	return nil
}

// Validate cleans dst if it is a Cleaner and checks its validate tags.
// Fields are reported under their form name, or their json name for
// API payloads.
func Validate(dst any) Errors {
	if c, ok := dst.(Cleaner); ok {
		c.Clean()
	}

	errs := Errors{}

	err := validate.Struct(dst)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonField, err.Error())
		return errs
	}

	for _, fe := range verrs {
		errs.Add(fieldKey(fe), message(fe))
	}

	return errs
}

// fieldKey turns "ArticleForm.comments[0].body" into "comments.0.body",
// the same key the field is posted under.
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}

	return strings.NewReplacer("[", ".", "]", "").Replace(ns)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "gt", "min":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}
