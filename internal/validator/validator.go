// Package validator проверяет данные формы сокращения ссылки.
package validator

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/Totarae/shortlink-demo/internal/model"
)

// Поля формы, к которым относится ошибка.
const (
	FieldLongURL         = "longUrl"
	FieldValidityPeriod  = "validityPeriod"
	FieldCustomShortcode = "customShortcode"
)

const (
	MsgURLRequired      = "Original Long URL is required."
	MsgURLInvalid       = "Please enter a valid URL (e.g., https://example.com)."
	MsgValidityInvalid  = "Validity Period must be a positive number of minutes."
	MsgShortcodeEmpty   = "Custom Shortcode cannot be empty if enabled."
	MsgShortcodeCharset = "Custom Shortcode can only contain letters, numbers, hyphens, and underscores."
)

var shortcodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidationError описывает первую найденную ошибку ввода.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate проверяет форму по порядку: URL, срок действия, пользовательский код.
// Возвращает nil, если данные корректны.
func Validate(s model.Submission) *ValidationError {
	if s.LongURL == "" {
		return &ValidationError{Field: FieldLongURL, Message: MsgURLRequired}
	}
	if !IsAbsoluteURL(s.LongURL) {
		return &ValidationError{Field: FieldLongURL, Message: MsgURLInvalid}
	}

	if s.UseCustomValidity {
		if _, ok := ParseValidity(s.ValidityPeriod); !ok {
			return &ValidationError{Field: FieldValidityPeriod, Message: MsgValidityInvalid}
		}
	}

	if s.UseCustomShortcode {
		if s.CustomShortcode == "" {
			return &ValidationError{Field: FieldCustomShortcode, Message: MsgShortcodeEmpty}
		}
		if !shortcodePattern.MatchString(s.CustomShortcode) {
			return &ValidationError{Field: FieldCustomShortcode, Message: MsgShortcodeCharset}
		}
	}

	return nil
}

// IsAbsoluteURL сообщает, содержит ли строка схему и хост.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// ParseValidity разбирает срок действия в минутах. Допускаются только конечные числа больше нуля.
func ParseValidity(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}
