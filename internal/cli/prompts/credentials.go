package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ValidateEmail is a light sanity check; the server has the final say.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return errors.New("enter a valid email")
	}
	return nil
}

// ValidatePassword rejects an empty password.
func ValidatePassword(s string) error {
	if s == "" {
		return errors.New("password is required")
	}
	return nil
}

// RunCredentials asks for whichever of email and password is missing.
func RunCredentials(title, email, password string) (string, string, error) {
	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Validate(ValidateEmail).
			Value(&email))
	}
	if password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(ValidatePassword).
			Value(&password))
	}
	if len(fields) == 0 {
		return email, password, nil
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title(title))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(email), password, nil
}
