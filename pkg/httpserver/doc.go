// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the context is canceled, SIGINT or SIGTERM arrives, or
// the listener fails. Shutdown drains in-flight requests within the
// configured timeout. WithTLS switches the listener to HTTPS using a
// certificate and key file pair.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8443"),
//		httpserver.WithTLS("cert.pem", "key.pem"),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, handler); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Errors returned by Run and Shutdown wrap ErrStart and ErrShutdown.
package httpserver
