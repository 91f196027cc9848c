// Package cli provides the interactive SecureChat command-line client.
//
// It wires configuration, the gRPC client and a REPL. Typical flow: log in
// with a phone number and one-time code, look people up, open a direct
// conversation or a secret room and chat. An open conversation is a live
// subscription; it is redrawn on every snapshot the server pushes.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
