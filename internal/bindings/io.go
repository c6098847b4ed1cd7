// SPDX-License-Identifier: MPL-2.0

package bindings

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"c2sh-runtime/internal/word"
)

// EOF is the word Getchar yields once standard input is exhausted,
// mirroring C's EOF.
const EOF word.Word = -1

// ErrBadFormat is returned when Printf meets a conversion it does not
// support or runs out of arguments.
var ErrBadFormat = errors.New("bad printf format")

// Puts writes the C string at addr to standard output followed by a
// newline, like C's puts.
func (b *Binder) Puts(addr word.Word) error {
	s, err := b.store.PackString(addr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(b.stdout, s)
	return err
}

// Getchar reads one byte from standard input, returning EOF when there is
// no more input.
func (b *Binder) Getchar() (word.Word, error) {
	c, err := b.stdin.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return EOF, nil
		}
		return EOF, err
	}
	return word.Word(c), nil
}

// Printf formats and writes to standard output. The format is a C string;
// the supported conversions are the subset the translator emits: %s (a
// C-string address), %d (a word as decimal), %c (a word as character) and
// %% for a literal percent sign.
func (b *Binder) Printf(format word.Word, args ...word.Word) error {
	f, err := b.store.PackString(format)
	if err != nil {
		return err
	}

	var out []byte
	next := 0
	for i := 0; i < len(f); i++ {
		c := f[i]
		if c != '%' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(f) {
			return fmt.Errorf("%w: trailing %%", ErrBadFormat)
		}
		switch f[i] {
		case '%':
			out = append(out, '%')
		case 's':
			arg, err := b.printfArg(&next, args)
			if err != nil {
				return err
			}
			s, err := b.store.PackString(arg)
			if err != nil {
				return err
			}
			out = append(out, s...)
		case 'd':
			arg, err := b.printfArg(&next, args)
			if err != nil {
				return err
			}
			out = strconv.AppendInt(out, int64(arg), 10)
		case 'c':
			arg, err := b.printfArg(&next, args)
			if err != nil {
				return err
			}
			out = append(out, byte(arg))
		default:
			return fmt.Errorf("%w: %%%c", ErrBadFormat, f[i])
		}
	}

	_, err = b.stdout.Write(out)
	return err
}

func (b *Binder) printfArg(next *int, args []word.Word) (word.Word, error) {
	if *next >= len(args) {
		return 0, fmt.Errorf("%w: not enough arguments", ErrBadFormat)
	}
	arg := args[*next]
	*next++
	return arg, nil
}
