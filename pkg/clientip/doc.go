// Package clientip resolves the address of the client that sent a request
// and makes it available to handlers and log records.
//
// Proxy headers are consulted in the order CF-Connecting-IP,
// X-Forwarded-For (first valid entry), X-Real-IP, and the connection's
// RemoteAddr is used last. Only run behind proxies that overwrite these
// headers; they are trivially spoofed otherwise.
package clientip
