// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProgramNotFoundId Id = iota + 1
	ProgramParseErrorId
	AllocationOverflowId
	MalformedCStringId
	RunnerNotAvailableId
	HostCommandFailedId
	ConfigLoadFailedId
	InvalidRunnerModeId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links for the issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	programNotFoundIssue = &Issue{
		id: ProgramNotFoundId,
		mdMsg: `
# Program not found!

The translated program you specified does not exist or is not readable.

## Things you can try:
- Check the path for typos
- Verify the file was produced by the translator
- Run from the directory that contains the program:
~~~
$ c2shrun run ./welcome.sh
~~~`,
	}

	programParseErrorIssue = &Issue{
		id: ProgramParseErrorId,
		mdMsg: `
# Failed to parse program!

The program is not valid POSIX shell, so the embedded interpreter
refused to load it.

## Common causes:
- The file was edited by hand after translation
- The file is not a translated program at all
- A heredoc or quote was left unterminated

## Things you can try:
- Re-run the translator to regenerate the program
- Check the parse error above for the offending line`,
	}

	allocationOverflowIssue = &Issue{
		id: AllocationOverflowId,
		mdMsg: `
# Out of memory words!

The program asked for more memory than the word store can address.
Memory is never reclaimed during a run, so long loops that allocate
on every iteration will eventually exhaust the store.

## Things you can try:
- Hoist allocations out of loops in the original C source and retranslate
- Raise the configured store cap if you lowered it:
~~~toml
[store]
max_words = 0  # 0 means the full addressable range
~~~`,
	}

	malformedCStringIssue = &Issue{
		id: MalformedCStringId,
		mdMsg: `
# Malformed C string!

A string operation walked from its starting address to the top of
allocated memory without finding a zero terminator.

## Common causes:
- A pointer to something that is not a string was passed where a string was expected
- The terminator was overwritten by a buffer overrun in the original C source

## Things you can try:
- Check the address the failing operation received
- Audit writes near the end of the buffer in the original C source`,
	}

	runnerNotAvailableIssue = &Issue{
		id: RunnerNotAvailableId,
		mdMsg: `
# Runner not available!

The selected runner cannot execute host utilities on this system.

## Available runners:
- **native**: spawns host utilities as real processes
- **virtual**: serves shell builtins in-process and spawns the rest

## Things you can try:
- Switch runners:
~~~
$ c2shrun run --runner virtual ./program.sh
~~~

- Or set a default in your config file:
~~~toml
runner = "virtual"
~~~`,
	}

	hostCommandFailedIssue = &Issue{
		id: HostCommandFailedId,
		mdMsg: `
# Host command failed!

A host command exited nonzero while strict failure mode was active.

## Things you can try:
- Inspect the command's stderr above
- Run without strict mode so the status lands in the return slot instead:
~~~
$ c2shrun run --strict=false ./program.sh
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the c2sh configuration file.

## Configuration file locations:
- Linux: ~/.config/c2sh/config.toml
- macOS: ~/Library/Application Support/c2sh/config.toml
- Windows: %APPDATA%\c2sh\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ c2shrun config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
runner = "native"
strict = false

[ui]
verbose = false
~~~`,
	}

	invalidRunnerModeIssue = &Issue{
		id: InvalidRunnerModeId,
		mdMsg: `
# Invalid runner mode!

The specified runner mode is not recognized.

## Valid runner modes:
- **native**: spawn host utilities as real processes
- **virtual**: serve shell builtins from the embedded interpreter

## Example:
~~~toml
runner = "native"
~~~`,
	}

	issues = map[Id]*Issue{
		programNotFoundIssue.Id():    programNotFoundIssue,
		programParseErrorIssue.Id():  programParseErrorIssue,
		allocationOverflowIssue.Id(): allocationOverflowIssue,
		malformedCStringIssue.Id():   malformedCStringIssue,
		runnerNotAvailableIssue.Id(): runnerNotAvailableIssue,
		hostCommandFailedIssue.Id():  hostCommandFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		invalidRunnerModeIssue.Id():  invalidRunnerModeIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
