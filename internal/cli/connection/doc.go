// Package connection provides the connection handle for rudis-cli.
//
// A Client owns one TCP connection to a RESP-speaking server plus the
// buffer of reply bytes not yet consumed. There is no ambient or shared
// connection state: callers create a handle with Dial, pass commands
// through Do and close it when done.
//
// Do sends exactly one command and consumes exactly one reply. Bytes
// received past the end of that reply stay buffered for the next call, and
// a reply arriving in pieces is retried against the growing buffer until
// the codec stops reporting a truncated frame.
package connection
