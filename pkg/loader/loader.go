package loader

import (
	"context"
)

type EvidenceFileType string

const (
	EvidenceFileTypeText     EvidenceFileType = "text"
	EvidenceFileTypePDF      EvidenceFileType = "pdf"
	EvidenceFileTypeDocument EvidenceFileType = "document"
	EvidenceFileTypeWeb      EvidenceFileType = "web"
)

// EvidenceFile represents a piece of evidence that can be turned into text
// for entity extraction. FilePath is a storage key, local path, or URL
// depending on the configured Loader.
type EvidenceFile struct {
	ID       string
	FilePath string
	FileType EvidenceFileType
	Loader   EvidenceFileLoader
}

// NewEvidenceFileParams defines the input parameters for creating a new
// EvidenceFile instance.
type NewEvidenceFileParams struct {
	ID       string
	FilePath string
	Loader   EvidenceFileLoader
}

// NewTextEvidenceFile creates an EvidenceFile for plain text content such as
// witness statements or typed notes.
func NewTextEvidenceFile(params NewEvidenceFileParams) EvidenceFile {
	return EvidenceFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		FileType: EvidenceFileTypeText,
		Loader:   params.Loader,
	}
}

// NewPDFEvidenceFile creates an EvidenceFile for PDF documents such as
// scanned reports or court filings.
func NewPDFEvidenceFile(params NewEvidenceFileParams) EvidenceFile {
	return EvidenceFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		FileType: EvidenceFileTypePDF,
		Loader:   params.Loader,
	}
}

// NewDocumentEvidenceFile creates an EvidenceFile for Word documents.
func NewDocumentEvidenceFile(params NewEvidenceFileParams) EvidenceFile {
	return EvidenceFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		FileType: EvidenceFileTypeDocument,
		Loader:   params.Loader,
	}
}

// NewWebEvidenceFile creates an EvidenceFile whose FilePath is a URL.
func NewWebEvidenceFile(params NewEvidenceFileParams) EvidenceFile {
	return EvidenceFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		FileType: EvidenceFileTypeWeb,
		Loader:   params.Loader,
	}
}

// GetText retrieves the text content of the evidence using its Loader.
func (f *EvidenceFile) GetText(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileText(ctx, *f)
}

// EvidenceFileLoader defines the interface for loading the contents of an
// EvidenceFile. Implementations may load files from disk, object storage,
// or the web.
type EvidenceFileLoader interface {
	GetFileText(ctx context.Context, file EvidenceFile) ([]byte, error)
}

// CacheKey returns the cache identity of an evidence file.
func CacheKey(file EvidenceFile) string {
	return file.ID + ":" + file.FilePath
}
