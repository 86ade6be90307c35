package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/speclint/parser"
)

const oas2Doc = `swagger: "2.0"
basePath: /api
paths:
  /users/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: true
          type: integer
        - $ref: '#/parameters/PageSize'
    post:
      parameters:
        - name: body
          in: body
          schema:
            $ref: '#/definitions/User'
parameters:
  PageSize:
    name: pageSize
    in: query
    type: integer
definitions:
  User:
    type: object
    required: [email]
    properties:
      email:
        type: string
      address:
        type: object
        properties:
          zip:
            type: string
      friends:
        type: array
        items:
          $ref: '#/definitions/User'
`

func mustParse(t *testing.T, text string) *parser.Document {
	t.Helper()
	doc, err := parser.Parse(text)
	require.NoError(t, err)
	return doc
}

func TestWalk_NilDocument(t *testing.T) {
	err := Walk(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil document")
}

func TestWalk_OAS2(t *testing.T) {
	doc := mustParse(t, oas2Doc)

	var paths, ops, fields []string
	err := Walk(doc,
		WithPathHandler(func(path, full string, _ parser.Map, line int) Action {
			paths = append(paths, path+"="+full)
			assert.Positive(t, line)
			return Continue
		}),
		WithOperationHandler(func(op *Operation) Action {
			ops = append(ops, op.Method+" "+op.Path)
			return Continue
		}),
		WithFieldHandler(func(f *Field) Action {
			fields = append(fields, f.Kind.String()+":"+f.Locator)
			return Continue
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"/users/{id}=/api/users/{id}"}, paths)
	assert.Equal(t, []string{"GET /users/{id}", "POST /users/{id}"}, ops)
	assert.Equal(t, []string{
		"parameter:parameters[0]",
		"parameter:parameters[1]",
		"body-property:requestBody.email",
		"body-property:requestBody.address",
		"body-property:requestBody.address.zip",
		"body-property:requestBody.friends",
	}, fields)
}

func TestWalk_ParameterRefResolved(t *testing.T) {
	doc := mustParse(t, oas2Doc)
	var names []string
	require.NoError(t, Walk(doc, WithFieldHandler(func(f *Field) Action {
		if f.Kind == KindParameter {
			names = append(names, f.Name+"/"+f.In)
		}
		return Continue
	})))
	assert.Equal(t, []string{"id/path", "pageSize/query"}, names)
}

func TestWalk_SharedSchemas(t *testing.T) {
	doc := mustParse(t, oas2Doc)
	var locs []string
	require.NoError(t, Walk(doc,
		WithSharedSchemas(true),
		WithFieldHandler(func(f *Field) Action {
			if f.Kind == KindSchemaProperty {
				assert.Equal(t, "User", f.Schema)
				assert.Nil(t, f.Op)
				locs = append(locs, f.Locator)
			}
			return Continue
		}),
	))
	assert.Equal(t, []string{"User.email", "User.address", "User.address.zip", "User.friends"}, locs)
}

func TestWalk_RequiredFromSchema(t *testing.T) {
	doc := mustParse(t, oas2Doc)
	required := map[string]bool{}
	require.NoError(t, Walk(doc, WithFieldHandler(func(f *Field) Action {
		if f.Kind == KindBodyProperty {
			required[f.Locator] = f.Required
		}
		return Continue
	})))
	assert.True(t, required["requestBody.email"])
	assert.False(t, required["requestBody.address"])
}

func TestWalk_SkipChildrenAndStop(t *testing.T) {
	doc := mustParse(t, oas2Doc)

	var fields []string
	require.NoError(t, Walk(doc,
		WithOperationHandler(func(op *Operation) Action {
			if op.Method == "GET" {
				return SkipChildren
			}
			return Continue
		}),
		WithFieldHandler(func(f *Field) Action {
			fields = append(fields, f.Locator)
			if f.Name == "address" {
				return SkipChildren
			}
			return Continue
		}),
	))
	assert.Equal(t, []string{"requestBody.email", "requestBody.address", "requestBody.friends"}, fields)

	count := 0
	require.NoError(t, Walk(doc, WithFieldHandler(func(*Field) Action {
		count++
		return Stop
	})))
	assert.Equal(t, 1, count)
}

func TestWalk_OAS3RequestBodyAndServers(t *testing.T) {
	doc := mustParse(t, `openapi: 3.0.3
servers:
  - url: https://api.example.com/v1/
paths:
  /tags:
    put:
      requestBody:
        required: true
        content:
          text/plain:
            schema:
              type: string
          application/json:
            schema:
              type: array
              items:
                type: object
                properties:
                  name:
                    type: string
`)
	var full string
	var locs []string
	require.NoError(t, Walk(doc,
		WithOperationHandler(func(op *Operation) Action {
			full = op.FullPath
			return Continue
		}),
		WithFieldHandler(func(f *Field) Action {
			locs = append(locs, f.Locator)
			return Continue
		}),
	))
	assert.Equal(t, "/v1/tags", full)
	assert.Equal(t, []string{"requestBody[].name"}, locs)
}

func TestWalk_Bespoke(t *testing.T) {
	doc := mustParse(t, `apis:
  - name: createUser
    path: /users
    method: post
    request:
      fields:
        - name: email
          type: String
          required: true
        - name: address
          type: Address
          fields:
            - name: zip
              type: String
    response:
      fields:
        - name: id
          type: Long
  - not-a-map
`)
	var apis []string
	var locs []string
	require.NoError(t, Walk(doc,
		WithAPIHandler(func(api *API) Action {
			apis = append(apis, api.Endpoint().String())
			return Continue
		}),
		WithFieldHandler(func(f *Field) Action {
			locs = append(locs, f.Locator+"="+f.Name)
			return Continue
		}),
	))
	require.Len(t, apis, 2)
	assert.Equal(t, "apis[0] POST /users", apis[0])
	assert.Equal(t, []string{
		"request.fields[0]=email",
		"request.fields[1]=address",
		"request.fields[1].fields[0]=zip",
		"response.fields[0]=id",
	}, locs)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Continue", Continue.String())
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}
