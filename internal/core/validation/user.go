package validation

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

var (
	userName     = field{name: "name", required: "Name is required.", invalid: "Invalid name format."}
	userEmail    = field{name: "email", required: "Email is required.", invalid: "Invalid email format."}
	userPassword = field{name: "password", required: "Password is required.", invalid: "Invalid password format."}
	userPhone    = field{name: "phone", required: "Phone number is required.", invalid: "Invalid phone number format."}
	newPassword  = field{name: "new_password", required: "Password is required.", invalid: "Invalid password format."}
)

const (
	msgEmailTaken   = "This email is already registered."
	msgPhoneTaken   = "This phone is already registered."
	msgEmailUnknown = "No account found with this email."
)

var passwordLength = lengthRule(4, 12)

// UserSchemas validates registration, login and password reset input.
type UserSchemas struct {
	lookup UniquenessLookup
	check  *checker
}

func NewUserSchemas(lookup UniquenessLookup) *UserSchemas {
	return &UserSchemas{lookup: lookup, check: newChecker()}
}

// Registration requires a unique email and phone.
func (s *UserSchemas) Registration(ctx context.Context, in Input) (domain.Registration, error) {
	errs := Errors{}

	name, _, ok := in.str(userName, errs, true)
	if ok {
		s.check.apply(errs, userName.name, name, lengthRule(2, 50))
	}

	email, ok := s.email(in, errs)
	if ok {
		if err := unique(ctx, s.lookup, errs, userEmail.name, domain.UniqueUserEmail, email, 0, false, msgEmailTaken); err != nil {
			return domain.Registration{}, err
		}
	}

	password, _, ok := in.str(userPassword, errs, true)
	if ok {
		s.check.apply(errs, userPassword.name, password, passwordLength)
	}

	phone, _, ok := in.str(userPhone, errs, true)
	if ok {
		s.check.apply(errs, userPhone.name, phone, phoneRules...)
		if err := unique(ctx, s.lookup, errs, userPhone.name, domain.UniqueUserPhone, phone, 0, false, msgPhoneTaken); err != nil {
			return domain.Registration{}, err
		}
	}

	if err := errs.err(); err != nil {
		return domain.Registration{}, err
	}
	return domain.Registration{Name: name, Email: email, Password: password, Phone: phone}, nil
}

// Login checks format only; the password hash is compared by the caller.
func (s *UserSchemas) Login(ctx context.Context, in Input) (domain.Credentials, error) {
	errs := Errors{}

	email, ok := s.email(in, errs)
	if ok {
		if err := unique(ctx, s.lookup, errs, userEmail.name, domain.UniqueUserEmail, email, 0, true, msgEmailUnknown); err != nil {
			return domain.Credentials{}, err
		}
	}

	password, _, ok := in.str(userPassword, errs, true)
	if ok {
		s.check.apply(errs, userPassword.name, password, passwordLength)
	}

	if err := errs.err(); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Email: email, Password: password}, nil
}

func (s *UserSchemas) Reset(ctx context.Context, in Input) (domain.PasswordReset, error) {
	errs := Errors{}

	email, ok := s.email(in, errs)
	if ok {
		if err := unique(ctx, s.lookup, errs, userEmail.name, domain.UniqueUserEmail, email, 0, true, msgEmailUnknown); err != nil {
			return domain.PasswordReset{}, err
		}
	}

	password, _, ok := in.str(newPassword, errs, true)
	if ok {
		s.check.apply(errs, newPassword.name, password, passwordLength)
	}

	if err := errs.err(); err != nil {
		return domain.PasswordReset{}, err
	}
	return domain.PasswordReset{Email: email, NewPassword: password}, nil
}

// email reads and format-checks the email field. ok is false when any
// message was recorded for it.
func (s *UserSchemas) email(in Input, errs Errors) (string, bool) {
	email, _, ok := in.str(userEmail, errs, true)
	if !ok {
		return "", false
	}
	s.check.applyGated(errs, userEmail.name, email, emailFormat, emailRules...)
	return email, !errs.Has(userEmail.name)
}
