package signing

// FileMeta describes one file the client wants to upload.
type FileMeta struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// SignedUpload is the per-file result: a short-lived write URL plus the
// public read URL derived from the storage key.
type SignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

type SignBatchRequest struct {
	Files []FileMeta `json:"files" validate:"required,min=1,dive"`
}

type SignBatchResponse struct {
	Results []SignedUpload `json:"results"`
}
