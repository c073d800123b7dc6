// Package main provides the entry point for rudis-cli.
//
// rudis-cli is the command-line client for Rudis and any other
// RESP-speaking server. It supports:
//
//   - Single-command mode: encode the arguments, print the reply
//   - Interactive REPL mode with persistent history
//   - A sequential SET benchmark (bench)
//
// Usage:
//
//	rudis-cli [flags] [COMMAND [arg ...]]
//	rudis-cli --host localhost -p 6379 GET mykey
//	rudis-cli bench -n 10000 --rate 500
//
// Without a command, rudis-cli drops into the REPL.
package main
