package heuristic

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/internal/severity"
)

func TestStringSuggestions(t *testing.T) {
	tests := []struct {
		name, field, format string
		ok                  bool
		category            Category
		family              Family
		sev                 severity.Severity
	}{
		{"plain", "userName", "", true, CategoryText, FamilyLength, severity.SeverityWarning},
		{"email", "email", "", true, CategoryEmail, FamilyFormat, severity.SeverityInfo},
		{"mail address", "mailAddress", "", true, CategoryEmail, FamilyFormat, severity.SeverityInfo},
		{"phone", "mobilePhone", "", true, CategoryPhone, FamilyPattern, severity.SeverityInfo},
		{"tel word", "tel", "", true, CategoryPhone, FamilyPattern, severity.SeverityInfo},
		{"hotel is not tel", "hotel", "", true, CategoryText, FamilyLength, severity.SeverityWarning},
		{"url", "avatarUrl", "", true, CategoryURL, FamilyPattern, severity.SeverityWarning},
		{"birth date", "birthDate", "date", true, CategoryBirth, FamilyTemporal, severity.SeverityInfo},
		{"dob", "dob", "date", true, CategoryBirth, FamilyTemporal, severity.SeverityInfo},
		{"appointment", "appointmentTime", "date-time", true, CategorySchedule, FamilyTemporal, severity.SeverityInfo},
		{"start time", "startTime", "date-time", true, CategorySchedule, FamilyTemporal, severity.SeverityInfo},
		{"plain date", "createdAt", "date-time", false, "", 0, 0},
		{"uuid format", "token", "uuid", false, "", 0, 0},
		{"password format still needs length", "password", "password", true, CategoryText, FamilyLength, severity.SeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := String(tt.field, tt.format)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.category, s.Category)
			assert.Equal(t, tt.family, s.Family)
			assert.Equal(t, tt.sev, s.Severity)
		})
	}
}

func TestNumberSuggestions(t *testing.T) {
	tests := []struct {
		field, in, hint string
		ok              bool
		category        Category
		min, max        string
	}{
		{"page", "query", "", true, CategoryPage, "1", MaxInt32},
		{"pageNum", "query", "", true, CategoryPage, "1", MaxInt32},
		{"pageSize", "query", "", true, CategoryPageSize, "1", "100"},
		{"limit", "query", "", true, CategoryPageSize, "1", "100"},
		{"age", "", "", true, CategoryAge, "0", "150"},
		{"message", "", "", true, CategoryNumber, "0", MaxInt32},
		{"score", "", "", true, CategoryScore, "0", "100"},
		{"totalPrice", "", "", true, CategoryMoney, "0", ""},
		{"userId", "path", "", true, CategoryPathID, "1", ""},
		{"userId", "query", "", false, CategoryIdentifier, "", ""},
		{"id", "", "", false, CategoryIdentifier, "", ""},
		{"width", "", "", true, CategoryNumber, "0", MaxInt32},
		{"count", "", "Long", true, CategoryNumber, "0", MaxInt64},
		{"weight", "", "double", true, CategoryNumber, "0", MaxDecimal},
	}
	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.in, func(t *testing.T) {
			s, ok := Number(tt.field, tt.in, tt.hint)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.category, s.Category)
			if ok {
				assert.Equal(t, FamilyRange, s.Family)
				assert.Equal(t, tt.min, s.Min)
				assert.Equal(t, tt.max, s.Max)
			}
		})
	}
}

func TestArrayAndText(t *testing.T) {
	a := Array("tags")
	assert.Equal(t, FamilyItems, a.Family)
	assert.Equal(t, "min: 1, max: 100", a.Text())

	m, _ := Number("amount", "", "")
	assert.Equal(t, "min: 0", m.Text())

	e, _ := String("email", "")
	assert.Equal(t, "format: email", e.Text())

	b, _ := String("birthday", "date")
	assert.Equal(t, "past", b.Text())

	assert.Equal(t, "range", FamilyRange.String())
}

func TestPatternsCompile(t *testing.T) {
	email := regexp.MustCompile(EmailPattern)
	assert.True(t, email.MatchString("jane.doe+x@example.co.uk"))
	assert.False(t, email.MatchString("not-an-email"))

	phone := regexp.MustCompile(PhonePattern)
	assert.True(t, phone.MatchString("+8613800138000"))
	assert.False(t, phone.MatchString("abc"))

	url := regexp.MustCompile(URLPattern)
	assert.True(t, url.MatchString("https://example.com/a?b=c"))
	assert.False(t, url.MatchString("ftp://example.com"))
}

func TestNamePredicates(t *testing.T) {
	assert.True(t, IsIdentifier("orderUUID"))
	assert.False(t, IsIdentifier("valid"))
	assert.True(t, IsDateFormat("date-time"))
	assert.False(t, IsDateFormat("email"))
	dir, ok := TemporalFor("scheduleAt")
	require.True(t, ok)
	assert.Equal(t, Future, dir)
	_, ok = TemporalFor("name")
	assert.False(t, ok)
}
