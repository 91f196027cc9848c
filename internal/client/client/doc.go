// Package client is the SecureChat client library.
//
// Client is the transport-agnostic contract the REPL talks to. GRPCClient
// implements it over the securechat.v1.SecureChat service: it keeps the
// access token obtained at login, attaches it to every call and maps gRPC
// statuses back to the sentinel errors of internal/common, so callers can
// use errors.Is(err, common.ErrPayloadTooLarge) on either side of the wire.
//
// Live views (roster, aliases, conversation) are returned as Subscriptions
// delivering full-replace snapshots until closed.
package client
