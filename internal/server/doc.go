// Package server is the HTTP transport around the acyclicity checker. It
// routes requests, validates pipeline payloads before they reach the core,
// applies the CORS policy for trusted origins and logs every request.
package server
