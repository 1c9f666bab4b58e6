package storage

import (
	"context"
	"time"
)

// Upload kinds accepted by the media endpoint.
const (
	KindProfilePhoto = "photo"
	KindCertificate  = "certificate"
)

// StorageService defines media storage operations for profile photos and
// doctor certificates.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(resourceType, publicID string) (string, error)
	GetSecureDownloadURL(resourceType, publicID string, expires time.Duration) (string, error)
}

// FolderFor maps an upload kind to its storage folder. Unknown kinds land in
// a generic misc folder.
func FolderFor(kind string) string {
	switch kind {
	case KindProfilePhoto:
		return "mediconnect/photos"
	case KindCertificate:
		return "mediconnect/certificates"
	default:
		return "mediconnect/misc"
	}
}
