package combine

// CollectedFile is a file selected for the consolidated artifact.
type CollectedFile struct {
	Path    string // Absolute path.
	RelPath string // Slash-separated path relative to the traversal root.
	Ext     string // Lowercase extension as reported by filepath.Ext.
}

// FileContent holds the content of a file after processing.
type FileContent struct {
	Path        string // Relative path written in the file header.
	Content     string // Filtered body, or a placeholder comment.
	Placeholder bool   // Content is a placeholder rather than the file body.
}

// Summary describes a finished run.
type Summary struct {
	Output       string // Path of the artifact.
	Files        int    // Number of collected files.
	Placeholders int    // Files replaced by a placeholder.
	TreeIncluded bool   // The artifact starts with the ASCII tree.
	Artifact     string // Complete artifact text.
}

// Artifact headings and placeholders.
const (
	TreeHeading    = "Folder Structure (ASCII Tree):"
	FilesHeading   = "Consolidated Code Files (Import statements excluded):"
	NoFilesNotice  = "[No files found with the specified extensions.]"
	FileHeaderText = "# File: "

	// ChunkSize is the number of bytes sniffed for binary content.
	ChunkSize = 512
)
