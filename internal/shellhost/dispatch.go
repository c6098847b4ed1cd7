// SPDX-License-Identifier: MPL-2.0

package shellhost

import (
	"fmt"
	"io"
	"strconv"

	"mvdan.cc/sh/v3/interp"

	"c2sh-runtime/internal/frame"
	"c2sh-runtime/internal/word"
)

// dispatch executes one runtime operation. Usage mistakes (wrong argument
// count, malformed numbers, unknown operations) surface as command
// failures the program can observe; runtime faults (allocation overflow,
// unterminated C strings) are returned as errors and abort the program,
// matching the fatal semantics of the memory model.
func (s *session) dispatch(hc interp.HandlerContext, op string, args []string) error {
	restore := s.binder.Redirect(hc.Stdout, hc.Stderr)
	defer restore()

	switch op {
	case "alloc":
		n, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		addr, aerr := s.store.Alloc(n[0])
		if aerr != nil {
			return aerr
		}
		return s.emit(hc.Stdout, addr)

	case "free":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		return s.store.Free(a[0])

	case "peek":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		w, lerr := s.store.Load(a[0])
		if lerr != nil {
			return lerr
		}
		return s.emit(hc.Stdout, w)

	case "poke":
		a, err := s.wordArgs(hc, op, args, 2)
		if err != nil {
			return err
		}
		return s.store.Set(a[0], a[1])

	case "unpack_string":
		if len(args) != 1 {
			return s.usage(hc, op, "expects exactly one host string")
		}
		addr, err := s.store.UnpackString(args[0])
		if err != nil {
			return err
		}
		return s.emit(hc.Stdout, addr)

	case "pack_string":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		hs, perr := s.store.PackString(a[0])
		if perr != nil {
			return perr
		}
		_, werr := io.WriteString(hc.Stdout, hs)
		return werr

	case "unpack_lines":
		if len(args) != 0 {
			return s.usage(hc, op, "reads standard input and takes no arguments")
		}
		in, rerr := io.ReadAll(hc.Stdin)
		if rerr != nil {
			return rerr
		}
		arr, err := s.store.UnpackLines(string(in))
		if err != nil {
			return err
		}
		return s.emit(hc.Stdout, arr)

	case "pack_lines":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		lines, perr := s.store.PackLines(a[0])
		if perr != nil {
			return perr
		}
		for _, line := range lines {
			if _, werr := fmt.Fprintln(hc.Stdout, line); werr != nil {
				return werr
			}
		}
		return nil

	case "getchar":
		if len(args) != 0 {
			return s.usage(hc, op, "takes no arguments")
		}
		c, err := s.binder.Getchar()
		if err != nil {
			return err
		}
		return s.emit(hc.Stdout, c)

	case "puts":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		return s.binder.Puts(a[0])

	case "printf":
		if len(args) < 1 {
			return s.usage(hc, op, "expects a format address")
		}
		a, err := s.wordArgs(hc, op, args, len(args))
		if err != nil {
			return err
		}
		return s.binder.Printf(a[0], a[1:]...)

	case "strict":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		s.binder.SetStrict(a[0] != 0)
		return nil

	case "cat", "touch", "mkdir":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		var ret frame.ValueSlot
		var berr error
		switch op {
		case "cat":
			berr = s.binder.Cat(&ret, a[0])
		case "touch":
			berr = s.binder.Touch(&ret, a[0])
		case "mkdir":
			berr = s.binder.Mkdir(&ret, a[0])
		}
		return s.statusResult(ret, berr)

	case "chmod":
		a, err := s.wordArgs(hc, op, args, 2)
		if err != nil {
			return err
		}
		var ret frame.ValueSlot
		berr := s.binder.Chmod(&ret, a[0], a[1])
		return s.statusResult(ret, berr)

	case "ls":
		a, err := s.wordArgs(hc, op, args, len(args))
		if err != nil {
			return err
		}
		var ret frame.ValueSlot
		if berr := s.binder.Ls(&ret, a...); berr != nil {
			return berr
		}
		return s.emit(hc.Stdout, ret.Value())

	case "wc":
		a, err := s.wordArgs(hc, op, args, 1)
		if err != nil {
			return err
		}
		var ret frame.ValueSlot
		if berr := s.binder.Wc(&ret, a[0]); berr != nil {
			return berr
		}
		return s.emit(hc.Stdout, ret.Value())

	case "date", "pwd":
		if len(args) != 0 {
			return s.usage(hc, op, "takes no arguments")
		}
		var ret frame.ValueSlot
		var berr error
		if op == "date" {
			berr = s.binder.Date(&ret)
		} else {
			berr = s.binder.Pwd(&ret)
		}
		if berr != nil {
			return berr
		}
		return s.emit(hc.Stdout, ret.Value())

	case "exec":
		a, err := s.wordArgs(hc, op, args, len(args))
		if err != nil {
			return err
		}
		var ret frame.ValueSlot
		berr := s.binder.Exec(&ret, a...)
		return s.statusResult(ret, berr)

	default:
		e := &UnknownOpError{Op: op}
		fmt.Fprintln(hc.Stderr, e.Error())
		return interp.ExitStatus(127)
	}
}

// emit prints a word result for command substitution capture.
func (s *session) emit(w io.Writer, v word.Word) error {
	_, err := fmt.Fprintln(w, v)
	return err
}

// statusResult maps a status binding's outcome onto the command's exit
// code: 0 passes through as success, anything else as that status.
func (s *session) statusResult(ret frame.ValueSlot, err error) error {
	if err != nil {
		return err
	}
	status := ret.Value()
	if status == 0 {
		return nil
	}
	if status < 0 || status > 255 {
		status = 1
	}
	return interp.ExitStatus(status)
}

// usage reports an operation misuse as an observable command failure.
func (s *session) usage(hc interp.HandlerContext, op, msg string) error {
	fmt.Fprintf(hc.Stderr, "%s %s: %s\n", RuntimeCommand, op, msg)
	return interp.ExitStatus(2)
}

// wordArgs parses exactly n decimal word arguments.
func (s *session) wordArgs(hc interp.HandlerContext, op string, args []string, n int) ([]word.Word, error) {
	if len(args) != n {
		return nil, s.usage(hc, op, fmt.Sprintf("expects %d argument(s), got %d", n, len(args)))
	}
	out := make([]word.Word, 0, n)
	for _, a := range args {
		v, err := strconv.ParseInt(a, 10, 32)
		if err != nil {
			return nil, s.usage(hc, op, fmt.Sprintf("bad word %q", a))
		}
		out = append(out, word.Word(v))
	}
	return out, nil
}
