package types

// Recording identifies an uploaded audio recording in object storage.
type Recording struct {
	// ID is the opaque identifier handed back to the client.
	ID string `json:"id"`

	// ContentType is the MIME type the recording was uploaded with.
	ContentType string `json:"contentType"`

	// Size is the recording size in bytes.
	Size int64 `json:"size"`
}
