package repl

import "strings"

// Completer provides command name completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the common command names.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"APPEND", "AUTH", "CONFIG GET", "CONFIG SET", "DBSIZE", "DECR",
			"DEL", "ECHO", "EXISTS", "EXPIRE", "FLUSHALL", "FLUSHDB", "GET",
			"GETRANGE", "HDEL", "HGET", "HGETALL", "HSET", "INCR", "KEYS",
			"LLEN", "LPOP", "LPUSH", "LRANGE", "MGET", "MSET", "PERSIST",
			"PING", "RPOP", "RPUSH", "SELECT", "SET", "SETRANGE", "STRLEN",
			"TTL", "TYPE",
			"exit", "quit",
		},
	}
}

// Complete returns the commands matching the given prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	up := strings.ToUpper(prefix)
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToUpper(cmd), up) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
