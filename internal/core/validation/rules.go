package validation

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern     = regexp.MustCompile(`^\+?\d{7,15}$`)
	emailDomainExt   = regexp.MustCompile(`\.[A-Za-z]{2,}$`)
	imageExtensions  = map[string]struct{}{"png": {}, "jpg": {}, "jpeg": {}, "gif": {}}
	imageExtsMessage = "Invalid image format. Allowed: png, jpg, jpeg, gif."
)

// rule is one validator tag with the message reported when it fails.
type rule struct {
	tag string
	msg string
}

func lengthRule(min, max int) rule {
	return rule{
		tag: fmt.Sprintf("min=%d,max=%d", min, max),
		msg: fmt.Sprintf("Length must be between %d and %d.", min, max),
	}
}

func rangeRule(min, max float64) rule {
	return rule{
		tag: fmt.Sprintf("min=%g,max=%g", min, max),
		msg: fmt.Sprintf("Must be greater than or equal to %g and less than or equal to %g.", min, max),
	}
}

// maxEmailLength matches the users.email column.
const maxEmailLength = 120

// emailFormat gates emailRules: when it fails no other email message is reported.
var emailFormat = rule{tag: "email", msg: "Invalid email format."}

var emailRules = []rule{
	{tag: fmt.Sprintf("max=%d", maxEmailLength), msg: fmt.Sprintf("Email must be at most %d characters.", maxEmailLength)},
	{tag: "contains=@", msg: "Email must contain '@'."},
	{tag: "no_spaces", msg: "Email cannot contain spaces."},
	{tag: "no_double_dots", msg: "Email cannot contain consecutive dots."},
	{tag: "domain_ext", msg: "Email must contain a valid domain extension (e.g., .com, .org)."},
}

var phoneRules = []rule{
	{tag: "phone", msg: "Phone number must contain only digits"},
}

var imageRules = []rule{
	{tag: "image_ext", msg: imageExtsMessage},
}

// checker runs go-playground/validator tags against single values.
type checker struct {
	v *validator.Validate
}

func newChecker() *checker {
	v := validator.New()
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("no_spaces", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), " ")
	}))
	must(v.RegisterValidation("no_double_dots", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), "..")
	}))
	must(v.RegisterValidation("domain_ext", func(fl validator.FieldLevel) bool {
		return emailDomainExt.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("image_ext", func(fl validator.FieldLevel) bool {
		return AllowedImageName(fl.Field().String())
	}))
	return &checker{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// apply evaluates every rule, recording the message of each failing one.
func (c *checker) apply(errs Errors, name string, value any, rules ...rule) {
	for _, r := range rules {
		if err := c.v.Var(value, r.tag); err != nil {
			errs.Add(name, r.msg)
		}
	}
}

// applyGated evaluates rules only when gate passes.
func (c *checker) applyGated(errs Errors, name string, value any, gate rule, rules ...rule) {
	if err := c.v.Var(value, gate.tag); err != nil {
		errs.Add(name, gate.msg)
		return
	}
	c.apply(errs, name, value, rules...)
}

// AllowedImageName reports whether a raw filename carries one of the
// schema-level image extensions (png, jpg, jpeg, gif).
func AllowedImageName(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	_, ok := imageExtensions[ext]
	return ok
}
