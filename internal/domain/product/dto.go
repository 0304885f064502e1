package product

// Image upload lifecycle statuses as reported by the client. Only done images
// are persisted.
const (
	StatusUploading = "uploading"
	StatusDone      = "done"
	StatusError     = "error"
)

// ImagePayload mirrors one client-side upload entry at submit time. Fields
// beyond key/url/status are optional presentation hints.
type ImagePayload struct {
	ID        string  `json:"id,omitempty"`
	FileName  string  `json:"file_name,omitempty"`
	Key       string  `json:"key,omitempty"`
	URL       string  `json:"url,omitempty"`
	Status    string  `json:"status,omitempty"`
	Alt       *string `json:"alt,omitempty"`
	Mime      *string `json:"mime,omitempty"`
	Ordering  *int    `json:"ordering,omitempty"`
	IsPrimary *bool   `json:"is_primary,omitempty"`
}

// Done reports whether this image finished uploading and carries a usable
// storage reference. An absent status defaults to done, matching the form
// contract.
func (p ImagePayload) Done() bool {
	status := p.Status
	if status == "" {
		status = StatusDone
	}
	return status == StatusDone && (p.Key != "" || p.URL != "")
}

type CreateProductRequest struct {
	Name        string         `json:"name" validate:"required"`
	Description *string        `json:"description,omitempty"`
	Price       string         `json:"price" validate:"required"`
	Currency    string         `json:"currency" validate:"required"`
	Images      []ImagePayload `json:"images" validate:"required,min=1"`
}

type CreateProductResponse struct {
	ID int64 `json:"id"`
}

type ListResponse struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
