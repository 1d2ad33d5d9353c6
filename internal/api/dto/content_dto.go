package dto

// FileEntry is one listed gallery artifact.
type FileEntry struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}
