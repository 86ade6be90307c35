package analyzer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/oaserrors"
)

func ruleIDs(list []Issue) []string {
	out := make([]string, len(list))
	for i, issue := range list {
		out[i] = issue.RuleID
	}
	return out
}

func find(list []Issue, rule string) (Issue, bool) {
	for _, issue := range list {
		if issue.RuleID == rule {
			return issue, true
		}
	}
	return Issue{}, false
}

func TestAnalyze_DoubleSlashAndOperationID(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /api//users/detail:
    get:
      responses:
        "200":
          description: OK
`)
	assert.Equal(t, []string{RulePathDoubleSlash, RuleMissingOperationID}, ruleIDs(got))

	slash := got[0]
	assert.Equal(t, SeverityError, slash.Severity)
	assert.Equal(t, "/api//users/detail", slash.Endpoint.Path)
	assert.Equal(t, 3, slash.Line)
	assert.True(t, slash.Fixable)

	opID := got[1]
	assert.Equal(t, SeverityWarning, opID.Severity)
	assert.Equal(t, "GET", opID.Endpoint.Method)
	assert.Equal(t, 4, opID.Line)
}

func TestAnalyze_EmailParameterIsInfo(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /users:
    get:
      operationId: listUsers
      parameters:
        - name: email
          in: query
          required: true
          description: Filter by email
          type: string
      responses:
        "200":
          description: OK
`)
	issue, ok := find(got, RuleEmailFormat)
	require.True(t, ok, "expected an email-format issue, got %v", ruleIDs(got))
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, "parameters[0]", issue.Field)
	assert.Contains(t, issue.Message, "format: email")

	_, generic := find(got, RuleStringLength)
	assert.False(t, generic, "email fields must not get the generic length warning")
}

func TestAnalyze_DuplicateMethodHalts(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /users:
    get:
      operationId: first
    get:
      operationId: second
  //orders:
    post: {}
`)
	require.Len(t, got, 1)
	assert.Equal(t, RuleDuplicateMethod, got[0].RuleID)
	assert.Equal(t, SeverityError, got[0].Severity)
	assert.False(t, got[0].Fixable)
	assert.True(t, HasGate(got))

	res := New().Analyze(`paths:
  /a: {}
  /a: {}
`)
	assert.True(t, res.Halted)
	assert.Equal(t, []string{RuleDuplicateKey}, ruleIDs(res.Issues))
}

func TestAnalyze_ParseError(t *testing.T) {
	got := Analyze("paths: [unclosed\n")
	require.Len(t, got, 1)
	assert.Equal(t, RuleParseError, got[0].RuleID)
	assert.Equal(t, SeverityError, got[0].Severity)

	got = Analyze("   ")
	require.Len(t, got, 1)
	assert.Equal(t, RuleParseError, got[0].RuleID)

	got = Analyze("- just\n- a list\n")
	require.Len(t, got, 1)
	assert.Equal(t, RuleParseError, got[0].RuleID)
}

func TestAnalyze_UnknownShape(t *testing.T) {
	got := Analyze("info:\n  title: nothing here\n")
	assert.Equal(t, []string{RuleUnknownShape}, ruleIDs(got))
}

func TestAnalyze_PathHygiene(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "placeholder segment is not flagged",
			doc: `swagger: "2.0"
paths:
  /TENANT/users:
    get:
      operationId: list
      responses: {"200": {description: OK}}
`,
			want: []string{},
		},
		{
			name: "root base path does not double the separator",
			doc: `swagger: "2.0"
basePath: /
paths:
  /users:
    get:
      operationId: list
      responses: {"200": {description: OK}}
`,
			want: []string{},
		},
		{
			name: "missing leading slash",
			doc: `swagger: "2.0"
paths:
  users:
    get:
      operationId: list
      responses: {"200": {description: OK}}
`,
			want: []string{RulePathLeadingSlash},
		},
		{
			name: "key defect under a server prefix",
			doc: `openapi: 3.0.3
servers:
  - url: https://api.example.com/v1/
paths:
  //users:
    get:
      operationId: list
      responses: {"204": {description: gone}}
`,
			want: []string{RulePathDoubleSlash},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ruleIDs(Analyze(tt.doc)))
		})
	}
}

func TestAnalyze_PrefixDefectsReportedOnce(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		field   string
		rules   []string
		message string
	}{
		{
			name: "server url",
			doc: `openapi: 3.0.3
servers:
  - url: https://h//v1/
paths:
  /users:
    get:
      operationId: listUsers
      responses: {"200": {description: OK}}
  /users/{id}:
    get:
      operationId: getUser
      responses: {"200": {description: OK}}
`,
			field:   "servers[0].url",
			rules:   []string{RulePathDoubleSlash},
			message: `servers[0].url "https://h//v1/" contains a repeated "/"`,
		},
		{
			name: "base path",
			doc: `swagger: "2.0"
basePath: api//v1
paths:
  /users:
    get:
      operationId: listUsers
      responses: {"200": {description: OK}}
  /orders:
    get:
      operationId: listOrders
      responses: {"200": {description: OK}}
`,
			field:   "basePath",
			rules:   []string{RulePathLeadingSlash, RulePathDoubleSlash},
			message: `basePath "api//v1" does not start with "/"`,
		},
		{
			name: "relative server url",
			doc: `openapi: 3.0.3
servers:
  - url: /v1
  - url: v2
paths:
  /users:
    get:
      operationId: listUsers
      responses: {"200": {description: OK}}
`,
			field:   "servers[1].url",
			rules:   []string{RulePathLeadingSlash},
			message: `servers[1].url "v2" does not start with "/"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.doc)
			assert.Equal(t, tt.rules, ruleIDs(got))
			require.NotEmpty(t, got)
			assert.Equal(t, tt.message, got[0].Message)
			for _, issue := range got {
				assert.Equal(t, tt.field, issue.Field)
				assert.Empty(t, issue.Endpoint.Path)
				assert.True(t, issue.Fixable)
			}
		})
	}
}

func TestAnalyze_KeyDefectNamesTheKey(t *testing.T) {
	got := Analyze(`openapi: 3.0.3
servers:
  - url: https://api.example.com/v1
paths:
  users/{id}:
    get:
      operationId: getUser
      responses: {"200": {description: OK}}
`)
	require.Len(t, got, 1)
	assert.Equal(t, RulePathLeadingSlash, got[0].RuleID)
	assert.Equal(t, `path "users/{id}" does not start with "/"`, got[0].Message)
	assert.Equal(t, "users/{id}", got[0].Endpoint.Path)
}

func TestAnalyze_ParameterRules(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /users/{userId}:
    get:
      operationId: getUser
      parameters:
        - name: userId
          in: path
          required: true
          type: integer
        - name: filter
          in: query
        - name: pageSize
          in: query
          type: integer
        - name: nickname
          in: query
          type: string
          minLength: 10
          maxLength: 2
        - name: tags
          in: query
          type: array
          items:
            type: string
      responses:
        "200":
          description: OK
`)
	assert.Equal(t, []string{
		RuleMissingParamDescription, // userId
		RuleMissingNotNull,          // userId
		RuleNumericRange,            // userId (path identifier)
		RuleMissingParamType,        // filter
		RuleNumericRange,            // pageSize
		RuleInvertedLength,          // nickname
		RuleArraySize,               // tags
	}, ruleIDs(got))

	pageSize := got[4]
	assert.Equal(t, "parameters[2]", pageSize.Field)
	assert.Contains(t, pageSize.Message, "suggested min: 1, max: 100")

	inverted := got[5]
	assert.Equal(t, SeverityError, inverted.Severity)
	assert.Contains(t, inverted.Message, "minLength (10) greater than maxLength (2)")
}

func TestAnalyze_SchemaNestedConstraints(t *testing.T) {
	got := Analyze(`openapi: 3.0.3
paths:
  /orders:
    post:
      operationId: createOrder
      parameters:
        - name: page
          in: query
          schema:
            type: integer
            minimum: 1
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Order'
      responses:
        "201":
          description: created
components:
  schemas:
    Order:
      type: object
      required: [total]
      properties:
        total:
          type: number
          minimum: 100
          maximum: 1
        birthDate:
          type: string
          format: date
        createdAt:
          type: string
          format: date-time
`)
	assert.Equal(t, []string{
		RuleMissingBodyDescription,
		RuleInvertedRange,
		RulePastDate,
	}, ruleIDs(got))
	assert.Equal(t, "requestBody.total", got[1].Field)
	assert.Equal(t, "requestBody.birthDate", got[2].Field)
	assert.Equal(t, SeverityInfo, got[2].Severity)
}

func TestAnalyze_SuccessResponse(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "404":
          description: missing
`)
	require.Equal(t, []string{RuleMissingSuccessResponse}, ruleIDs(got))
	assert.False(t, got[0].Fixable)
}

func TestAnalyze_ClassAnnotations(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /users:
    x-java-class-annotations: ["@Validated", "@Audited"]
    get:
      operationId: list
      x-java-class-annotations: ["@Audited", "@Validated"]
      responses: {"200": {description: OK}}
    post:
      operationId: create
      x-java-class-annotations: ["@Validated"]
      responses: {"201": {description: OK}}
  /orders:
    get:
      operationId: listOrders
      x-java-class-annotations: "@Cached"
      responses: {"200": {description: OK}}
    delete:
      operationId: purge
      responses: {"204": {description: OK}}
`)
	require.Equal(t, []string{RuleClassAnnotationMismatch, RuleClassAnnotationMismatch}, ruleIDs(got))
	assert.Equal(t, "POST", got[0].Endpoint.Method)
	assert.Contains(t, got[0].Message, "[@Validated]")
	assert.Contains(t, got[0].Message, "[@Validated, @Audited]")
	assert.Equal(t, "/orders", got[1].Endpoint.Path)
	assert.Contains(t, got[1].Message, "declares none")
}

func TestAnalyze_SingleOperationSkipsConsistency(t *testing.T) {
	got := Analyze(`swagger: "2.0"
paths:
  /users:
    x-java-class-annotations: ["@A"]
    get:
      operationId: list
      x-java-class-annotations: ["@B"]
      responses: {"200": {description: OK}}
`)
	assert.Empty(t, got)
}

func TestAnalyze_Bespoke(t *testing.T) {
	got := Analyze(`apis:
  - name: createUser
    path: /users
    method: post
    annotations: "@Transactional"
    request:
      fields:
        - name: email
          type: String
          required: true
          validation:
            minLength: 3
            maxLength: 100
        - name: age
          type: Integer
        - type: String
        - name: nickname
  - path: //orders
    method: FETCH
    annotations:
      - "@Ok"
      - 42
    response:
      fields:
        - name: items
          type: List<String>
          validation:
            minSize: 9
            maxSize: 1
`)
	assert.Equal(t, []string{
		RuleAnnotationsNotList,  // createUser
		RuleEmailFormat,         // email
		RuleNumericRange,        // age
		RuleMissingFieldName,    // unnamed field
		RuleStringLength,        // unnamed field
		RuleMissingFieldType,    // nickname
		RuleMissingAPIName,      // apis[1]
		RulePathDoubleSlash,     // apis[1]
		RuleInvalidMethod,       // apis[1]
		RuleAnnotationNotString, // apis[1]
		RuleInvertedItems,       // items
	}, ruleIDs(got))

	email := got[1]
	assert.Equal(t, 0, email.Endpoint.Index)
	assert.Equal(t, "request.fields[0]", email.Field)
	assert.Equal(t, SeverityInfo, email.Severity)

	items := got[10]
	assert.Equal(t, 1, items.Endpoint.Index)
	assert.Equal(t, "response.fields[0]", items.Field)
}

func TestAnalyze_MissingPaths(t *testing.T) {
	got := Analyze("swagger: \"2.0\"\ninfo:\n  title: x\n")
	assert.Equal(t, []string{RuleMissingPaths}, ruleIDs(got))
}

func TestAnalyze_Deterministic(t *testing.T) {
	doc := `swagger: "2.0"
paths:
  /a//b:
    get:
      parameters:
        - {name: q, in: query, type: string}
`
	assert.Equal(t, Analyze(doc), Analyze(doc))
}

func TestAnalyzeWithOptions(t *testing.T) {
	doc := `swagger: "2.0"
paths:
  /users:
    get:
      parameters:
        - {name: email, in: query, type: string}
      responses: {"200": {description: OK}}
`
	t.Run("content", func(t *testing.T) {
		res, err := AnalyzeWithOptions(WithContent(doc))
		require.NoError(t, err)
		assert.Equal(t, []string{RuleMissingOperationID, RuleEmailFormat}, ruleIDs(res.Issues))
		assert.Equal(t, 1, res.Counts.Warnings)
		assert.Equal(t, 1, res.Counts.Infos)
		assert.False(t, res.HasErrors())
	})

	t.Run("min severity", func(t *testing.T) {
		res, err := AnalyzeWithOptions(WithContent(doc), WithMinSeverity(SeverityWarning))
		require.NoError(t, err)
		assert.Equal(t, []string{RuleMissingOperationID}, ruleIDs(res.Issues))
	})

	t.Run("disabled rules", func(t *testing.T) {
		res, err := AnalyzeWithOptions(WithContent(doc), WithDisabledRules(RuleMissingOperationID))
		require.NoError(t, err)
		assert.Equal(t, []string{RuleEmailFormat}, ruleIDs(res.Issues))
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := AnalyzeWithOptions(WithContent(doc), WithDisabledRules("no-such-rule"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
		res, err := AnalyzeWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Equal(t, path, res.SourcePath)
		assert.Len(t, res.Issues, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := AnalyzeWithOptions(WithFilePath(filepath.Join(t.TempDir(), "nope.yaml")))
		require.Error(t, err)
	})

	t.Run("no source", func(t *testing.T) {
		_, err := AnalyzeWithOptions()
		require.Error(t, err)
	})

	t.Run("two sources", func(t *testing.T) {
		_, err := AnalyzeWithOptions(WithContent(doc), WithFilePath("x.yaml"))
		require.Error(t, err)
	})

	t.Run("bad size", func(t *testing.T) {
		_, err := AnalyzeWithOptions(WithContent(doc), WithMaxFileSize(0))
		require.Error(t, err)
	})
}
