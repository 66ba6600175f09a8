// Package parser turns a decoded schema document into the schema AST.
//
// Parsing checks the shape of every keyword it knows (draft-04 spelling) and
// leaves type resolution to internal/typeresolve. Unknown keywords are ignored.
package parser
