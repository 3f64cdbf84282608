package irc

import "strings"

// Command extracts the IRC command or numeric from a raw line: the first
// token, or the second when the line starts with a source prefix.
func Command(line string) string {
	rest := line
	if strings.HasPrefix(rest, ":") {
		_, after, found := strings.Cut(rest, " ")
		if !found {
			return ""
		}
		rest = after
	}
	cmd, _, _ := strings.Cut(rest, " ")
	return strings.ToUpper(cmd)
}

// PingToken returns the parameter of a PING line, used verbatim in the PONG
// reply. The token is the trailing parameter when present, otherwise the
// first parameter.
func PingToken(line string) string {
	_, after, found := strings.Cut(line, " ")
	if !found {
		return ""
	}
	after = strings.TrimSpace(after)
	if trimmed, ok := strings.CutPrefix(after, ":"); ok {
		return trimmed
	}
	token, _, _ := strings.Cut(after, " ")
	return token
}
