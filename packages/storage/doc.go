// Package storage reads and writes curlspec request and environment files.
//
// Requests live as YAML documents under a requests directory and
// environments as YAML documents under an environments directory. The file
// types in this package mirror the model types but record disabled items
// explicitly, so that omitting the field means enabled.
package storage
