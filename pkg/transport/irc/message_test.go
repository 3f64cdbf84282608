package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"ping", "PING :irc.example.net", "PING"},
		{"privmsg with prefix", ":nick!user@host PRIVMSG #chan :hello", "PRIVMSG"},
		{"numeric with prefix", ":irc.example.net 001 hookbot :Welcome", "001"},
		{"lowercase normalized", ":server notice * :text", "NOTICE"},
		{"bare prefix only", ":server", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Command(tt.line))
		})
	}
}

func TestPingToken(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"trailing param", "PING :irc.example.net", "irc.example.net"},
		{"bare param", "PING token123", "token123"},
		{"no param", "PING", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PingToken(tt.line))
		})
	}
}
