// SPDX-License-Identifier: MPL-2.0

package bindings

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"c2sh-runtime/internal/word"
)

func TestPuts(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{}
	var stdout bytes.Buffer
	b, s := newBinder(t, fr, WithStdio(nil, &stdout, nil))

	if err := b.Puts(unpack(t, s, "What is your name?")); err != nil {
		t.Fatalf("Puts failed: %v", err)
	}
	if got, want := stdout.String(), "What is your name?\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestGetchar(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{}
	b, _ := newBinder(t, fr, WithStdio(strings.NewReader("ab"), nil, nil))

	want := []word.Word{'a', 'b', EOF, EOF}
	for i, w := range want {
		got, err := b.Getchar()
		if err != nil {
			t.Fatalf("Getchar #%d failed: %v", i, err)
		}
		if got != w {
			t.Errorf("Getchar #%d = %d, want %d", i, got, w)
		}
	}
}

func TestPrintf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		setup  func(t *testing.T, s *word.Store) []word.Word
		want   string
	}{
		{
			name:   "string conversion",
			format: "Hello, %s\n",
			setup: func(t *testing.T, s *word.Store) []word.Word {
				return []word.Word{unpack(t, s, "World")}
			},
			want: "Hello, World\n",
		},
		{
			name:   "decimal and char",
			format: "%d%%%c",
			setup: func(t *testing.T, s *word.Store) []word.Word {
				return []word.Word{-42, 'x'}
			},
			want: "-42%x",
		},
		{
			name:   "no conversions",
			format: "plain text",
			setup:  func(t *testing.T, s *word.Store) []word.Word { return nil },
			want:   "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fr := &fakeRunner{}
			var stdout bytes.Buffer
			b, s := newBinder(t, fr, WithStdio(nil, &stdout, nil))

			args := tt.setup(t, s)
			if err := b.Printf(unpack(t, s, tt.format), args...); err != nil {
				t.Fatalf("Printf failed: %v", err)
			}
			if stdout.String() != tt.want {
				t.Errorf("output = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestPrintfErrors(t *testing.T) {
	t.Parallel()

	fr := &fakeRunner{}
	b, s := newBinder(t, fr)

	if err := b.Printf(unpack(t, s, "%q"), 0); !errors.Is(err, ErrBadFormat) {
		t.Errorf("unsupported conversion error = %v, want ErrBadFormat", err)
	}
	if err := b.Printf(unpack(t, s, "%d")); !errors.Is(err, ErrBadFormat) {
		t.Errorf("missing argument error = %v, want ErrBadFormat", err)
	}
	if err := b.Printf(unpack(t, s, "oops%")); !errors.Is(err, ErrBadFormat) {
		t.Errorf("trailing %% error = %v, want ErrBadFormat", err)
	}
}
