package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleFor(t *testing.T) {
	tests := []struct {
		message string
		want    string
		fixable bool
	}{
		{"failed to parse document: yaml: line 3: did not find expected key", RuleParseError, false},
		{`path "/users" declares the GET method more than once; data may already have been lost`, RuleDuplicateMethod, false},
		{`paths declares "/users" more than once`, RuleDuplicateKey, false},
		{"repeated mapping key rejected by the YAML decoder: x", RuleDuplicateKey, false},
		{`path "users" does not start with "/"`, RulePathLeadingSlash, true},
		{`path "/a//b" contains a repeated "/"`, RulePathDoubleSlash, true},
		{"operation GET /users has no operationId", RuleMissingOperationID, true},
		{`required parameter "id" has no description; describe it by hand`, RuleMissingParamDescription, false},
		{`field "name" has minLength (5) greater than maxLength (1)`, RuleInvertedLength, true},
		{`field "n" has minimum (5) greater than maximum (1)`, RuleInvertedRange, true},
		{`required field "n" has no not-null enforcement`, RuleMissingNotNull, true},
		{`numeric field "n" has no range constraint (suggested min: 0)`, RuleNumericRange, true},
		{`field "name" has no type`, RuleMissingFieldType, false},
		{"field has no name", RuleMissingFieldName, false},
		{"something nobody planned for", RuleGeneral, false},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := RuleFor(tt.message)
			assert.Equal(t, tt.want, r.ID)
			assert.Equal(t, tt.fixable, r.Fixable)
		})
	}
}

func TestRulesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules() {
		assert.False(t, seen[r.ID], "duplicate rule %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Description)

		got, ok := LookupRule(r.ID)
		assert.True(t, ok)
		assert.Equal(t, r.ID, got.ID)
	}
	_, ok := LookupRule(RuleGeneral)
	assert.False(t, ok)
}

func TestIsGating(t *testing.T) {
	assert.True(t, IsGating(RuleDuplicateMethod))
	assert.True(t, IsGating(RuleDuplicateKey))
	assert.False(t, IsGating(RulePathDoubleSlash))
	assert.False(t, HasGate([]Issue{{RuleID: RuleParseError}}))
}
