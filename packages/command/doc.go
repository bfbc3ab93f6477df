// Package command renders curlspec requests as curl command lines.
//
// Rendering is a fixed pipeline: placeholders are substituted, the URL and
// its query string are assembled, and the argument list is quoted for a
// POSIX shell and joined into a single line. Every function is a pure
// function of its inputs and may be called concurrently.
package command
