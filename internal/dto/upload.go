package dto

// UploadResponse returns the public location of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}
