// Package walker traverses a parsed specification and hands every endpoint
// and field to typed handlers.
//
// All three engines (analyzer, fixer, differ) walk documents through this
// package, so a locator such as "parameters[1]" or "requestBody.address.zip"
// means the same field to each of them.
//
// # Quick Start
//
//	doc, _ := parser.Parse(text)
//	err := walker.Walk(doc,
//	    walker.WithOperationHandler(func(op *walker.Operation) walker.Action {
//	        fmt.Println(op.Method, op.FullPath)
//	        return walker.Continue
//	    }),
//	    walker.WithFieldHandler(func(f *walker.Field) walker.Action {
//	        fmt.Println(f.Locator, f.Type().Family)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action]:
//
//   - [Continue]: visit children and siblings
//   - [SkipChildren]: skip the node's children (an operation's fields, an
//     object field's nested properties)
//   - [Stop]: end the walk
//
// # Document Shapes
//
// OpenAPI documents yield [Operation] values for each method under paths,
// then [Field] values for their parameters and request body properties.
// Swagger 2.0 "in: body" parameters are walked as the request body. Local
// $ref values to shared parameters and schemas are followed, with a cycle
// guard. [WithSharedSchemas] adds a final pass over definitions or
// components.schemas.
//
// Bespoke documents yield one [API] per apis entry, then [Field] values for
// request.fields and response.fields, nested fields included.
//
// # Constraint Access
//
// [Field.Lookup] and [Field.Set] read and write constraints by [Keyword],
// hiding whether a document spells them as OpenAPI keywords on the field,
// keywords on a parameter's schema, x-java-validation entries, or a bespoke
// validation block.
package walker
