// Package storage persists uploaded files extracted from multipart bodies.
//
// Two backends implement Storage: LocalStorage writes under a base
// directory and refuses paths that escape it; S3Storage puts objects into
// an Amazon S3 (or S3-compatible) bucket through aws-sdk-go-v2.
//
// Uploads are passed as byte slices, so content returned by a
// formdata.Cursor can be stored without an intermediate copy:
//
//	f, _ := cursor.File("avatar")
//	meta, err := store.Save(ctx, storage.Upload{
//		Filename: f.Filename,
//		Content:  f.Content,
//	}, "avatars/")
//
// Every saved file is described by a File value carrying the sniffed MIME
// type and a BLAKE3 checksum of its content.
package storage
