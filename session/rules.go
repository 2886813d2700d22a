package session

import (
	"strings"

	"github.com/liftlog/liftlog-go/apierror"
)

// Form validation is a declarative rule set evaluated against the full
// input, so conditional requirements (the password-change trio is only
// required when a new password is present) live in data rather than
// scattered conditionals. Validation failures never reach the network.

const minPasswordLength = 8

type rule[T any] struct {
	field string
	when  func(T) bool
	check func(T) string
}

func evaluate[T any](input T, rules []rule[T]) error {
	for _, r := range rules {
		if r.when != nil && !r.when(input) {
			continue
		}
		if message := r.check(input); message != "" {
			return apierror.Validation(r.field + ": " + message)
		}
	}
	return nil
}

func required(value string) string {
	if strings.TrimSpace(value) == "" {
		return "is required"
	}
	return ""
}

func emailFormat(value string) string {
	if at := strings.Index(value, "@"); at < 1 || at == len(value)-1 {
		return "is not a valid email address"
	}
	return ""
}

func passwordLength(value string) string {
	if len(value) < minPasswordLength {
		return "must be at least 8 characters"
	}
	return ""
}

// SignInForm is the credential tuple of the sign-in operation.
type SignInForm struct {
	Email    string
	Password string
}

var signInRules = []rule[SignInForm]{
	{field: "email", check: func(f SignInForm) string { return required(f.Email) }},
	{field: "email", check: func(f SignInForm) string { return emailFormat(f.Email) }},
	{field: "password", check: func(f SignInForm) string { return required(f.Password) }},
}

// SignUpForm is the registration tuple of the sign-up operation.
type SignUpForm struct {
	Name     string
	Email    string
	Password string
}

var signUpRules = []rule[SignUpForm]{
	{field: "name", check: func(f SignUpForm) string { return required(f.Name) }},
	{field: "email", check: func(f SignUpForm) string { return required(f.Email) }},
	{field: "email", check: func(f SignUpForm) string { return emailFormat(f.Email) }},
	{field: "password", check: func(f SignUpForm) string { return required(f.Password) }},
	{field: "password", check: func(f SignUpForm) string { return passwordLength(f.Password) }},
}

// ProfileForm carries a profile edit. Empty fields are left unchanged; the
// password trio is validated only when a new password was entered.
type ProfileForm struct {
	Name            string
	Email           string
	NewPassword     string
	CurrentPassword string
	ConfirmPassword string
}

func (f ProfileForm) changesPassword() bool {
	return f.NewPassword != ""
}

var profileRules = []rule[ProfileForm]{
	{field: "email", when: func(f ProfileForm) bool { return f.Email != "" },
		check: func(f ProfileForm) string { return emailFormat(f.Email) }},
	{field: "newPassword", when: ProfileForm.changesPassword,
		check: func(f ProfileForm) string { return passwordLength(f.NewPassword) }},
	{field: "currentPassword", when: ProfileForm.changesPassword,
		check: func(f ProfileForm) string { return required(f.CurrentPassword) }},
	{field: "confirmPassword", when: ProfileForm.changesPassword,
		check: func(f ProfileForm) string {
			if f.ConfirmPassword != f.NewPassword {
				return "does not match the new password"
			}
			return ""
		}},
}
