package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// MinPhoneDigits is the shortest accepted phone number once non-digits are
// stripped.
const MinPhoneDigits = 10

// Customer is the contact the cut list is prepared for.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PhoneDigits returns only the digits of the phone number.
func (c Customer) PhoneDigits() string {
	var b strings.Builder
	for _, r := range c.Phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks that a name is present and the phone has enough digits.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	}
	if len(c.PhoneDigits()) < MinPhoneDigits {
		return fmt.Errorf("%w: phone number must have at least %d digits", ErrInvalidInput, MinPhoneDigits)
	}
	return nil
}

// Order is a submitted cut list stored for the workshop.
type Order struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	FileKey      string    `json:"file_key"`
	ExcelURL     string    `json:"excel_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// unsafeNameRun matches whitespace, path separators and parent references,
// which must not reach a storage key.
var unsafeNameRun = regexp.MustCompile(`(?:[\s/\\]|\.\.)+`)

// OrderFileKey returns the storage key for an order workbook. The key is
// always a single name directly under orders/.
func OrderFileKey(at time.Time, customerName string) string {
	name := unsafeNameRun.ReplaceAllString(customerName, "_")
	return fmt.Sprintf("orders/%d_%s.xlsx", at.UnixMilli(), name)
}

// FileURL returns the download path for a stored key.
func FileURL(key string) string {
	return "/api/files/" + url.PathEscape(key)
}
