package models

// UploadedFile represents a client document saved for the duration of one request.
// The handler that created it owns deletion.
type UploadedFile struct {
	Name string `json:"name"` // original file name as sent by the client
	Path string `json:"path"` // temporary on-disk location
	Size int64  `json:"size"`
}
