// Package repl provides the interactive prompt mode for rudis-cli.
//
// Each input line is split into whitespace-separated tokens, sent as one
// command over the connection handle and the decoded reply is rendered.
// Transport and protocol failures are printed and the loop continues;
// "exit" and "quit" end the session. Command history is persisted across
// sessions.
package repl
