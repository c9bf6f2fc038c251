package terminal

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Prompt is printed before every echoed command
const Prompt = "ahlan-os:~$"

// Line kinds
const (
	KindText = "text"
	KindPre  = "pre"
)

// Command names. CommandUnknown labels everything else.
const (
	CommandHelp     = "help"
	CommandClear    = "clear"
	CommandExit     = "exit"
	CommandNeofetch = "neofetch"
	CommandSecret   = "about --secret"
	CommandUnknown  = "unknown"
)

// Line is one block of terminal output, safe to insert as HTML
type Line struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Result is what one command produced
type Result struct {
	Command string `json:"command"` // Canonical name, for metrics
	Lines   []Line `json:"lines"`
	Clear   bool   `json:"clear"` // Output must be wiped before Lines are shown
	Close   bool   `json:"close"` // The terminal window should close
}

// Environment provides the desktop facts some commands print
type Environment interface {
	Resolution() (width, height float64)
}

// Interpreter runs the toy command set of the terminal window
type Interpreter struct {
	env       Environment
	sanitizer *bluemonday.Policy
}

// NewInterpreter creates an interpreter reading facts from env
func NewInterpreter(env Environment) *Interpreter {
	return &Interpreter{
		env:       env,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Execute runs one input line. The trimmed input is always echoed first,
// except for clear which wipes the echo along with everything else.
func (i *Interpreter) Execute(input string) Result {
	cmd := strings.TrimSpace(input)
	safe := i.sanitizer.Sanitize(cmd)
	echo := text(fmt.Sprintf("%s %s", Prompt, safe))

	switch cmd {
	case CommandHelp:
		return Result{
			Command: CommandHelp,
			Lines:   []Line{echo, text("Commands: help, clear, neofetch, exit, about --secret")},
		}
	case CommandClear:
		return Result{Command: CommandClear, Clear: true}
	case CommandExit:
		return Result{Command: CommandExit, Lines: []Line{echo}, Close: true}
	case CommandNeofetch:
		return Result{Command: CommandNeofetch, Lines: []Line{echo, i.neofetch()}}
	case CommandSecret:
		return Result{
			Command: CommandSecret,
			Lines:   []Line{echo, text("Secret: Áhlan builds engines even before learning graphics math fully.")},
		}
	default:
		return Result{
			Command: CommandUnknown,
			Lines:   []Line{echo, text("Command not found: " + safe)},
		}
	}
}

func (i *Interpreter) neofetch() Line {
	w, h := i.env.Resolution()
	return Line{
		Kind: KindPre,
		Text: strings.Join([]string{
			"PelkOS v1.0",
			"Developer: Áhlan Santos",
			"Kernel: Hybrid NT/LX (simulated)",
			"Theme: Pelk Dark",
			fmt.Sprintf("Resolution: %gx%g", w, h),
		}, "\n"),
	}
}

func text(s string) Line {
	return Line{Kind: KindText, Text: s}
}
