// Package validation holds the syntactic checks applied to contact and note
// submissions before anything reaches storage.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether text looks like local@domain.tld. No DNS lookup.
func ValidateEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// ValidatePhone accepts any punctuation or prefix as long as the digit count
// is within [MinPhoneDigits, MaxPhoneDigits].
func ValidatePhone(text string) bool {
	n := CountDigits(text)
	return n >= MinPhoneDigits && n <= MaxPhoneDigits
}

func CountDigits(text string) int {
	n := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ContactForm is a contact submission as typed by the user.
type ContactForm struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone" json:"phone"`
}

// Normalize trims surrounding whitespace from every field.
func (f ContactForm) Normalize() ContactForm {
	return ContactForm{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
	}
}

// Validate returns every problem with the form, in field order. An empty
// result means the form can be stored.
func (f ContactForm) Validate() []string {
	var errs []string
	if f.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if f.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	switch {
	case f.Email == "":
		errs = append(errs, "Email is required")
	case !ValidateEmail(f.Email):
		errs = append(errs, "Please enter a valid email address")
	}
	switch {
	case f.Phone == "":
		errs = append(errs, "Phone number is required")
	case !ValidatePhone(f.Phone):
		errs = append(errs, "Please enter a valid phone number (10-15 digits)")
	}
	return errs
}

// ValidateNoteText expects already-trimmed text.
func ValidateNoteText(text string) []string {
	if strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) }) < 0 {
		return []string{"Note text is required"}
	}
	return nil
}
