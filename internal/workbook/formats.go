package workbook

import "strings"

// isDateFormat сообщает, является ли встроенный формат Excel форматом даты/времени.
func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 45, 46, 47, 50, 57:
		return true
	}
	return false
}

// isDateCustomFormat ищет токены даты/времени в пользовательском формате,
// пропуская литералы в кавычках и цвета в квадратных скобках.
func isDateCustomFormat(code string) bool {
	var b strings.Builder
	inQuotes, inBrackets := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case r == '[':
			inBrackets = true
		case r == ']':
			inBrackets = false
		case inBrackets:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(b.String(), "ydmhs")
}
