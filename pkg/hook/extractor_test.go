package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "sender prefix then payload",
			raw:    ":first part:Hello this is a message",
			want:   "Hello this is a message",
			wantOK: true,
		},
		{
			name:   "trailing newline trimmed",
			raw:    ":nick!user@host PRIVMSG #chan :hello there\r\n",
			want:   "hello there",
			wantOK: true,
		},
		{
			name:   "no colon past the first character",
			raw:    ":JUSTAPREFIX",
			wantOK: false,
		},
		{
			name:   "colon only at position zero",
			raw:    ":",
			wantOK: false,
		},
		{
			name:   "empty line",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "server ping",
			raw:    "PING :irc.example.net",
			want:   "irc.example.net",
			wantOK: true,
		},
		{
			name:   "payload may be empty",
			raw:    ":prefix:",
			want:   "",
			wantOK: true,
		},
		{
			name:   "surrounding whitespace trimmed",
			raw:    ":prefix:   spaced out   ",
			want:   "spaced out",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
