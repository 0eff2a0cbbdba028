// Package hcl is the HCL front end of the CLI. It parses type expressions
// into ptype descriptors, loads results files into cty values, decodes those
// values into vectors and encodes simplified vectors back to cty for JSON
// output.
package hcl
