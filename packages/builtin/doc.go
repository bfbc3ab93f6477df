// Package builtin provides dynamic variables that are generated at render
// time instead of being read from an environment.
//
// Available variables:
//   - $uuid, $guid, $randomUUID: a random UUID v4
//   - $timestamp: current Unix timestamp in seconds
//   - $timestampMs: current Unix timestamp in milliseconds
//   - $isoTimestamp, $now: current time in RFC 3339 (UTC)
//   - $date: current date as YYYY-MM-DD (UTC)
//   - $randomInt: random integer between 0 and 1000
//   - $randomEmail: random email address
//   - $randomAlphanumeric: random 8 character string
//
// The names follow Postman's dynamic variables, so imported collections
// render without extra setup.
package builtin
