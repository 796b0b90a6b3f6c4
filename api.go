package juliafatou

// ImageProvider renders jobs into finished images.
type ImageProvider interface {
	// GetImage renders and post-processes job. The image is complete or
	// an error is returned; partial images are never handed out.
	GetImage(job Job) (*RGB, error)
}
