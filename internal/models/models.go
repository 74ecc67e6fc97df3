package models

// Image is a single catalog entry
type Image struct {
	ID           int    `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Category     string `json:"category" yaml:"category"`
	Photographer string `json:"photographer" yaml:"photographer"`
	URL          string `json:"url" yaml:"url"`
	Thumbnail    string `json:"thumbnail" yaml:"thumbnail"`
	UploadDate   Date   `json:"uploadDate" yaml:"uploadDate"`
}

// Catalog is the on-disk and on-the-wire shape of the full image list
type Catalog struct {
	Images []Image `json:"images" yaml:"images"`
}

// ErrorBody is returned by the API for every handled failure
type ErrorBody struct {
	Error string `json:"error"`
}

// HealthStatus is returned by GET /health
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
