// Package format содержит чистые функции для отображения данных.
package format

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes переводит размер в байтах в строку вида "1.5 KB" (основание 1024).
// Значения от 10 и байты выводятся без дробной части, остальные с одним знаком.
func Bytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	exp := 0
	value := float64(n)
	for value >= 1024 && exp < len(byteUnits)-1 {
		value /= 1024
		exp++
	}

	decimals := 1
	if value >= 10 || exp == 0 {
		decimals = 0
	}

	s := strconv.FormatFloat(value, 'f', decimals, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + " " + byteUnits[exp]
}

// Initials возвращает заглавные первые буквы первых двух слов имени
func Initials(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
