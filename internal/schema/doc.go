// Package schema defines the schema AST: node variants, keyword groups and
// the JSON type sets used to decide which keywords apply to a value.
package schema
