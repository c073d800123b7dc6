// Package output renders decoded protocol values for rudis-cli.
//
// The rendering follows the redis-cli conventions so output is familiar
// and diffable against the reference client:
//
//   - simple strings print bare ("OK")
//   - errors print as "(error) ..."
//   - integers print as "(integer) N"
//   - bulk strings print double-quoted, null values as "(nil)"
//   - arrays print one numbered element per line, nested arrays indented
//     under their index
package output
