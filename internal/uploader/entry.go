package uploader

// Status is an entry's upload lifecycle state. done and error are terminal;
// there is no automatic retry, the user removes the entry and re-adds the file.
type Status string

const (
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

// Entry is one selected file's lifecycle record within a creation session.
// Key and PublicURL are set exactly when Status is done; ErrorMessage exactly
// when Status is error.
type Entry struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	Status       Status `json:"status"`
	Progress     int    `json:"progress"`
	PreviewURL   string `json:"preview_url,omitempty"`
	Key          string `json:"key,omitempty"`
	PublicURL    string `json:"public_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	preview *Preview
}
