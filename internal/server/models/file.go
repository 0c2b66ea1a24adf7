package models

import "time"

// File describes server-side metadata for one uploaded artifact. The bytes
// themselves live in the blob store under StoredName, inside the owner's
// namespace; StoredName is never shown to users.
type File struct {
	// ID is the stable public identifier of the file.
	ID string
	// UserID is the owner of the file.
	UserID string

	// StoredName is the blob-store key of the artifact within the owner's
	// namespace. It is unique per user and never changes after upload.
	StoredName string
	// DisplayName is the user-visible name. Rename changes only this field.
	DisplayName string

	// Size is the artifact size in bytes as counted during the write.
	Size int64
	// ContentType is the declared media type hint from the upload.
	ContentType string

	UploadedAt time.Time
}
