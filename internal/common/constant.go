// Package common contains shared constants and sentinel errors used across
// the SecureChat client and server.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MaxImagePayloadSize is the default cap, in encoded bytes, for an inline
// image message payload.
const MaxImagePayloadSize = 500 * 1024
