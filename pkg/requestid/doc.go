// Package requestid tags every HTTP request with a correlation ID.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUIDv4, stores it in the request context and echoes it in
// the response header. LoggerExtractor plugs the ID into loggers built by
// the logger package so that every record written while handling an
// upload carries a request_id attribute.
package requestid
