package repl

import (
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
)

func TestClassifyPromptErr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      error
		want    promptEvent
		wantErr bool
	}{
		{"nil", nil, promptOK, false},
		// Ctrl-C only drops the current line; the session keeps going.
		{"aborted", liner.ErrPromptAborted, promptRetry, false},
		{"eof", io.EOF, promptExit, false},
		{"other", errors.New("tty gone"), promptExit, true},
	}
	for _, tc := range cases {
		event, err := classifyPromptErr(tc.in)
		if event != tc.want {
			t.Fatalf("%s: event=%v want %v", tc.name, event, tc.want)
		}
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: err=%v wantErr=%v", tc.name, err, tc.wantErr)
		}
	}
}
