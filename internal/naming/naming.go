// Package naming provides shared string case conversion utilities.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title upper-cases the first letter of a lower-case word. A Caser keeps
// state, so each call gets its own.
func title(w string) string {
	return cases.Title(language.English).String(w)
}

// SplitWords breaks an identifier or phrase into lower-case words.
// Separators and camelCase boundaries both split, and acronym runs stay
// together: "pageSize" -> [page size], "userID" -> [user id],
// "HTTPStatus" -> [http status], "list all users" -> [list all users].
func SplitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToPascalCase joins the words of s with each word title-cased.
// Example: "user_profile" -> "UserProfile"
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range SplitWords(s) {
		b.WriteString(title(w))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with the first word left lower-case.
// Example: "List all users" -> "listAllUsers"
func ToCamelCase(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(title(w))
	}
	return b.String()
}

// asciiOnly drops words that contain anything but ASCII letters and digits,
// since operation ids end up as method names in generated clients.
func asciiOnly(words []string) []string {
	out := words[:0:0]
	for _, w := range words {
		ok := true
		for _, r := range w {
			if r > unicode.MaxASCII {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, w)
		}
	}
	return out
}

// OperationIDFromSummary derives a camelCase operation id from a summary.
// It returns "" when the summary has no usable ASCII words.
func OperationIDFromSummary(summary string) string {
	words := asciiOnly(SplitWords(summary))
	if len(words) == 0 {
		return ""
	}
	return ToCamelCase(strings.Join(words, " "))
}

// OperationIDFromRoute derives a camelCase operation id from the HTTP method
// and path. Path parameters become "By<Name>" so that "/users/{id}" under GET
// yields "getUsersById".
func OperationIDFromRoute(method, path string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			parts = append(parts, "by", strings.Trim(seg, "{}"))
			continue
		}
		parts = append(parts, seg)
	}
	words := asciiOnly(SplitWords(strings.Join(parts, " ")))
	return ToCamelCase(strings.Join(words, " "))
}

// Humanize turns an identifier into a sentence-cased phrase.
// Example: "userName" -> "User name"
func Humanize(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	words[0] = title(words[0])
	return strings.Join(words, " ")
}
