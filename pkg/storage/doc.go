// Package storage keeps objects in S3-compatible object storage.
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "site-debug",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//
//	info, err := store.Put(ctx, bytes.NewReader(data), int64(len(data)),
//		storage.WithKey("map/lastSiteResponse.xml"),
//		storage.WithContentType("application/xml"),
//	)
//
// Errors are normalized onto sentinels such as ErrNotFound and ErrAccessDenied.
package storage
