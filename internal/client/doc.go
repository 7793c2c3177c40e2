// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

// Package client is the Go SDK for the zerovault server.
//
// It has two layers. [Client] is a thin HTTP/REST transport over resty: one
// method per endpoint, JSON in, JSON out, HTTP status codes mapped onto the
// sentinel errors in errors.go so that callers can use [errors.Is] without
// knowing the transport. [Vault] sits on top and owns the client-side
// cryptography: it derives the verifier and wrap key from the password, wraps
// and unwraps the account key, and seals and opens blob payloads, so the raw
// password and plaintext never cross the wire.
package client
