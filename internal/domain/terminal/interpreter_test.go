package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEnv struct{ w, h float64 }

func (e fixedEnv) Resolution() (float64, float64) { return e.w, e.h }

func newTestInterpreter() *Interpreter {
	return NewInterpreter(fixedEnv{w: 1280, h: 720})
}

func TestExecuteCommands(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		command string
		lines   []Line
		clear   bool
		close   bool
	}{
		{
			name:    "help",
			input:   "help",
			command: CommandHelp,
			lines: []Line{
				{KindText, "ahlan-os:~$ help"},
				{KindText, "Commands: help, clear, neofetch, exit, about --secret"},
			},
		},
		{
			name:    "input is trimmed",
			input:   "  help \t",
			command: CommandHelp,
			lines: []Line{
				{KindText, "ahlan-os:~$ help"},
				{KindText, "Commands: help, clear, neofetch, exit, about --secret"},
			},
		},
		{
			name:    "clear wipes everything including the echo",
			input:   "clear",
			command: CommandClear,
			clear:   true,
		},
		{
			name:    "exit closes the window",
			input:   "exit",
			command: CommandExit,
			lines:   []Line{{KindText, "ahlan-os:~$ exit"}},
			close:   true,
		},
		{
			name:    "secret",
			input:   "about --secret",
			command: CommandSecret,
			lines: []Line{
				{KindText, "ahlan-os:~$ about --secret"},
				{KindText, "Secret: Áhlan builds engines even before learning graphics math fully."},
			},
		},
		{
			name:    "unknown",
			input:   "ls",
			command: CommandUnknown,
			lines: []Line{
				{KindText, "ahlan-os:~$ ls"},
				{KindText, "Command not found: ls"},
			},
		},
		{
			name:    "empty line",
			input:   "   ",
			command: CommandUnknown,
			lines: []Line{
				{KindText, "ahlan-os:~$ "},
				{KindText, "Command not found: "},
			},
		},
		{
			name:    "markup is stripped from echo",
			input:   "<b>ls</b>",
			command: CommandUnknown,
			lines: []Line{
				{KindText, "ahlan-os:~$ ls"},
				{KindText, "Command not found: ls"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestInterpreter().Execute(tt.input)
			assert.Equal(t, tt.command, r.Command)
			assert.Equal(t, tt.lines, r.Lines)
			assert.Equal(t, tt.clear, r.Clear)
			assert.Equal(t, tt.close, r.Close)
		})
	}
}

func TestNeofetchReportsResolution(t *testing.T) {
	r := newTestInterpreter().Execute("neofetch")

	require.Len(t, r.Lines, 2)
	assert.Equal(t, "ahlan-os:~$ neofetch", r.Lines[0].Text)
	assert.Equal(t, KindPre, r.Lines[1].Kind)
	assert.Equal(t, "PelkOS v1.0\n"+
		"Developer: Áhlan Santos\n"+
		"Kernel: Hybrid NT/LX (simulated)\n"+
		"Theme: Pelk Dark\n"+
		"Resolution: 1280x720", r.Lines[1].Text)
}

func TestBufferApply(t *testing.T) {
	b := NewBuffer(3)
	in := newTestInterpreter()

	b.Apply(in.Execute("help"))
	assert.Equal(t, 2, b.Len())

	b.Apply(in.Execute("ls"))
	lines := b.Lines()
	require.Len(t, lines, 3, "oldest line dropped when full")
	assert.Equal(t, "Commands: help, clear, neofetch, exit, about --secret", lines[0].Text)
	assert.Equal(t, "Command not found: ls", lines[2].Text)

	b.Apply(in.Execute("clear"))
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Lines())
}

func TestBufferDefaultSize(t *testing.T) {
	assert.Equal(t, DefaultScrollback, NewBuffer(0).size)
}
