package domain

import (
	"strings"
	"time"
)

// CardDetails holds raw captured card data for the lifetime of one enrollment.
type CardDetails struct {
	Number string
	Holder string
	Expiry string
	CVV    string
}

func (c CardDetails) Last4() string { return lastN(c.Number, 4) }

// EnrolledCard is the masked record kept after an enrollment completes.
type EnrolledCard struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	AccountID   string    `gorm:"size:36;not null;index" json:"account_id"`
	Last4       string    `gorm:"size:4;not null" json:"last4"`
	Holder      string    `gorm:"size:255;not null" json:"holder"`
	Expiry      string    `gorm:"size:5;not null" json:"expiry"`
	MaskedPhone string    `gorm:"size:32;not null" json:"masked_phone"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

// MaskCardNumber renders a card number as four groups with only the last four digits visible.
func MaskCardNumber(number string) string {
	last4 := lastN(number, 4)
	if last4 == "" {
		return ""
	}
	return "•••• •••• •••• " + last4
}

// MaskPhone keeps the trailing two digits of a phone number.
func MaskPhone(phone string) string {
	if len(phone) <= 2 {
		return strings.Repeat("•", len(phone))
	}
	return strings.Repeat("•", len(phone)-2) + phone[len(phone)-2:]
}

func lastN(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[len(s)-n:]
}
