// Package model defines the request and environment types that curlspec renders.
//
// Values of these types are built by the storage and import layers and are
// treated as read-only by the command builder. List order (options, headers,
// query parameters, form fields) is significant and is preserved in output.
package model
