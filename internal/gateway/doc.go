// Package gateway connects chat sources to the command parser.
//
// Every gateway turns incoming text into a Message and hands it to a shared
// Dispatcher, which runs the matched command and sends replies back through
// the message. The console gateway reads lines from a terminal; the HTTP
// server accepts messages over POST /message and over a WebSocket at /ws, and
// streams bus events at /events. A Reloader swaps in a freshly built parser
// when template command files change.
package gateway
