package template

import (
	"strconv"
	"strings"
)

// Render substitutes positional placeholders in a template. Every literal
// occurrence of ${i} is replaced with values[i], for each index present in
// values, in increasing index order. Indices with no placeholder in the
// template are unused; placeholders with no corresponding value are left
// verbatim.
//
// Replacement is sequential: each index's pass operates on the output of the
// previous one. A value whose text itself contains a ${i}-shaped token is
// therefore substituted again by a later pass. Values are not re-escaped in
// any way. This is a deliberate, known limitation of the positional policy.
func Render(template string, values []string) string {
	out := template
	for i, v := range values {
		out = strings.ReplaceAll(out, placeholder(i), v)
	}
	return out
}

// RenderAll applies Render to every template value of the given map,
// returning a new map with the same keys. Used for header maps where names
// are static and only values are templated.
func RenderAll(templates map[string]string, values []string) map[string]string {
	if len(templates) == 0 {
		return nil
	}
	out := make(map[string]string, len(templates))
	for k, t := range templates {
		out[k] = Render(t, values)
	}
	return out
}

// placeholder returns the literal token for index i, e.g. "${0}".
func placeholder(i int) string {
	return "${" + strconv.Itoa(i) + "}"
}
