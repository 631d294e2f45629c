// Package upload serves multipart/form-data uploads over HTTP.
//
// POST stores every file part of the body through a storage.Storage under
// the request path and answers with a JSON summary of the stored files and
// the text fields. GET serves previously stored files from a local root,
// gzip compressed when the client accepts it.
//
//	store, _ := storage.NewLocalStorage("./uploads", "/")
//	h := upload.NewHandler(store,
//		upload.WithLogger(log),
//		upload.WithStaticRoot(store.BaseDir()),
//	)
//	http.ListenAndServe(":8080", h.Router())
package upload
