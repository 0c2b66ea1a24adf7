// Package common contains shared constants and sentinel errors used across
// Filecove components.
package common

// AuthHeaderName is the HTTP header carrying the bearer access token on
// outbound requests.
const AuthHeaderName = "Authorization"

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
