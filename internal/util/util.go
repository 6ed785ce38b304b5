package util

import (
	"math/rand"
	"strings"
)

const (
	// ShortcodeLength длина сгенерированного кода.
	ShortcodeLength = 6
	// alphabet base-36 в нижнем регистре
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateShortcode возвращает случайный код из 6 символов [a-z0-9].
// Уникальность не проверяется.
func GenerateShortcode() string {
	b := make([]byte, ShortcodeLength)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// ResolveShortcode выбирает пользовательский код, если он включён, иначе генерирует новый.
func ResolveShortcode(useCustom bool, custom string) string {
	if useCustom {
		return custom
	}
	return GenerateShortcode()
}

// BuildShortURL собирает короткую ссылку вида <origin>/<shortcode>.
func BuildShortURL(origin, shortcode string) string {
	return strings.TrimRight(origin, "/") + "/" + shortcode
}
