// Package jsonvalue provides the generic JSON value model consumed by the
// schema compiler and validators.
//
// A Value is an immutable tagged union over null, boolean, number, string,
// array and object. Objects keep their members in document order, duplicate
// keys included, so that schema documents can be checked for repeated
// keywords. Values can be built directly, decoded from JSON or YAML, or
// converted from the Go values produced by encoding/json.
package jsonvalue
