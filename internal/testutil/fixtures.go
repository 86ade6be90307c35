// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CleanSwagger is a Swagger 2.0 document that raises no issues.
const CleanSwagger = `swagger: "2.0"
info:
  title: Test API
  version: 1.0.0
basePath: /v1
paths:
  /users:
    get:
      operationId: listUsers
      summary: List users
      description: List users
      responses:
        "200":
          description: OK
`

// DirtySwagger is a Swagger 2.0 document with a double slash in its path
// key, no operationId, and an email parameter without validation.
const DirtySwagger = `swagger: "2.0"
info:
  title: Test API
  version: 1.0.0
paths:
  /api//users:
    get:
      parameters:
        - name: email
          in: query
          type: string
      responses:
        "200":
          description: OK
`

// InvertedOpenAPI is an OpenAPI 3 document whose only parameter has an
// inverted length range, which is an error.
const InvertedOpenAPI = `openapi: 3.0.3
info:
  title: Test API
  version: 1.0.0
paths:
  /users:
    get:
      operationId: listUsers
      description: List users
      parameters:
        - name: nickname
          in: query
          schema:
            type: string
            minLength: 50
            maxLength: 5
      responses:
        "200":
          description: OK
`

// RepeatedMethod is a Swagger 2.0 document that declares GET twice on one
// path. Fixing is refused for it.
const RepeatedMethod = `swagger: "2.0"
paths:
  /users:
    get:
      operationId: a
    get:
      operationId: b
`

// Bespoke is a bespoke API document with a double slash in its path and a
// required field without not-null enforcement.
const Bespoke = `apis:
  - name: createUser
    path: //users/new
    method: POST
    request:
      fields:
        - name: email
          type: String
          required: true
`

// WriteTemp writes content to a file named name in a fresh temporary
// directory and returns its path. The directory is removed when the test
// completes.
func WriteTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file %s: %v", name, err)
	}
	return path
}

// ReadFile reads path and fails the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
