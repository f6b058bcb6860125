package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sandeepkv93/fraudguard/internal/domain"
)

const (
	minCardDigits  = 16
	maxCardDigits  = 19
	minPhoneDigits = 10
	maxPhoneDigits = 15
	otpDigits      = 6
)

var expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// normalizeCard drops the grouping spaces card numbers are usually typed with.
func normalizeCard(c domain.CardDetails) domain.CardDetails {
	return domain.CardDetails{
		Number: strings.Join(strings.Fields(c.Number), ""),
		Holder: strings.TrimSpace(c.Holder),
		Expiry: strings.TrimSpace(c.Expiry),
		CVV:    strings.TrimSpace(c.CVV),
	}
}

func validateCard(c domain.CardDetails) *FieldError {
	switch {
	case !isDigits(c.Number) || len(c.Number) < minCardDigits || len(c.Number) > maxCardDigits:
		return fieldError("card_number", "must be 16 to 19 digits")
	case utf8.RuneCountInString(c.Holder) < 2:
		return fieldError("cardholder_name", "must be at least 2 characters")
	case !expiryRe.MatchString(c.Expiry):
		return fieldError("expiry", "must be MM/YY")
	case !isDigits(c.CVV) || len(c.CVV) < 3 || len(c.CVV) > 4:
		return fieldError("cvv", "must be 3 or 4 digits")
	}
	return nil
}

func validatePhone(phone string) *FieldError {
	if !isDigits(phone) || len(phone) < minPhoneDigits || len(phone) > maxPhoneDigits {
		return fieldError("phone", "must be 10 to 15 digits")
	}
	return nil
}

func validateCode(code string) *FieldError {
	if !isDigits(code) || len(code) != otpDigits {
		return fieldError("code", "must be exactly 6 digits")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
