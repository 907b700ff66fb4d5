package domain

// AllowedImageTypes lists the sniffed MIME types accepted for post images.
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
}

// DefaultKeyPrefix is the object key namespace for uploaded post images.
const DefaultKeyPrefix = "uploads/test/"
