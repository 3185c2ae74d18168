package config

import (
	"runtime"
	"strings"
)

// Command is a program plus optional fixed arguments.
//
// It has two shapes: a bare program (Args is nil), written in config files as
// a plain string, and a program with arguments, written as a table with
// "program" and "args" keys.
type Command struct {
	Program string
	Args    []string
}

// IsBare reports whether c is the plain "just a program" shape.
func (c Command) IsBare() bool {
	return len(c.Args) == 0
}

// Argv returns the argument vector for opening target.
// The target is appended after the fixed arguments.
func (c Command) Argv(target string) []string {
	argv := make([]string, 0, len(c.Args)+2)
	argv = append(argv, c.Program)
	argv = append(argv, c.Args...)
	return append(argv, target)
}

// Equal reports whether c and other run the same program with the same arguments.
func (c Command) Equal(other Command) bool {
	if c.Program != other.Program || len(c.Args) != len(other.Args) {
		return false
	}
	for i := range c.Args {
		if c.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// String renders the command line for display.
func (c Command) String() string {
	if c.IsBare() {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// raw returns the canonical configuration form of c. A program spelled
// like "none" keeps the table form so it is not read back as disabled.
func (c Command) raw() any {
	if c.IsBare() && !strings.EqualFold(strings.TrimSpace(c.Program), "none") {
		return c.Program
	}
	args := make([]any, len(c.Args))
	for i, a := range c.Args {
		args[i] = a
	}
	return map[string]any{"program": c.Program, "args": args}
}

// DefaultLauncherFor returns the link opener for the given GOOS value.
func DefaultLauncherFor(goos string) Command {
	switch goos {
	case "darwin", "ios":
		return Command{Program: "open"}
	case "windows":
		return Command{Program: "explorer"}
	default:
		// Linux and the BSDs.
		return Command{Program: "xdg-open"}
	}
}

// DefaultLauncher returns the link opener for the running platform.
func DefaultLauncher() Command {
	return DefaultLauncherFor(runtime.GOOS)
}

// parseCommand decodes either command shape.
func parseCommand(path string, raw any) (Command, error) {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return Command{}, &ValueError{Path: path, Value: raw, Reason: "program must not be empty"}
		}
		return Command{Program: v}, nil
	case map[string]any, map[any]any:
		m, ok := asMap(v)
		if !ok {
			return Command{}, &TypeError{Path: path, Expected: "table with string keys", Actual: typeName(raw)}
		}
		programPath := joinPath(path, "program")
		rawProgram, ok := m["program"]
		if !ok {
			return Command{}, &ValueError{Path: programPath, Value: nil, Reason: "missing"}
		}
		program, ok := rawProgram.(string)
		if !ok {
			return Command{}, &TypeError{Path: programPath, Expected: "string", Actual: typeName(rawProgram)}
		}
		if strings.TrimSpace(program) == "" {
			return Command{}, &ValueError{Path: programPath, Value: program, Reason: "program must not be empty"}
		}
		cmd := Command{Program: program}
		if rawArgs, ok := m["args"]; ok && rawArgs != nil {
			args, err := asStringSlice(joinPath(path, "args"), rawArgs)
			if err != nil {
				return Command{}, err
			}
			if len(args) > 0 {
				cmd.Args = args
			}
		}
		return cmd, nil
	default:
		return Command{}, &TypeError{Path: path, Expected: "string or table", Actual: typeName(raw)}
	}
}

// launcher decodes the link opener. The literal "none" in any case disables
// it and yields nil. Absence and malformed input both yield the platform
// default; only the latter is recorded.
func (d *Decoder) launcher(path string, raw any) *Command {
	def := DefaultLauncher()
	if raw == nil {
		return &def
	}

	if s, ok := raw.(string); ok && strings.EqualFold(strings.TrimSpace(s), "none") {
		return nil
	}

	cmd, err := parseCommand(path, raw)
	if err != nil {
		d.recover(path, raw, def.Program, err)
		return &def
	}
	return &cmd
}
