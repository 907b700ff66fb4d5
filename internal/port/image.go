package port

// TransformedImage is the output of an image transform.
type TransformedImage struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// ImageTransformer resizes raw image bytes before storage.
type ImageTransformer interface {
	Transform(data []byte) (*TransformedImage, error)
}
