// Package template implements positional placeholder substitution for
// webhook bodies and header values.
//
// Templates reference capture-group values by index: ${0} is the full match,
// ${1} the first capturing group, and so on.
//
//	template.Render(`{"user": "${1}"}`, []string{"user=alice", "alice"})
//
// Render is a pure function with no failure mode. See the Render doc comment
// for the double-substitution caveat around values that contain placeholder
// tokens themselves.
package template
