// Package terminal implements the command interpreter of the terminal window.
//
// The interpreter is a leaf: it takes one typed line and returns output lines
// plus two requests, Clear (wipe the output) and Close (close the terminal
// window). The caller applies them; the interpreter never touches desktop
// state. Echoed input is passed through a bluemonday strict policy because
// the browser inserts output as HTML.
//
// Commands:
//   - help: list commands
//   - clear: wipe the output, including the echo
//   - exit: close the terminal window
//   - neofetch: system summary with the current resolution
//   - about --secret: a hidden message
//
// Buffer keeps a bounded scrollback per terminal.
package terminal
