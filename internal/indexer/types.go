package indexer

// Chunk is the atomic unit stored and embedded: a bounded-length slice of a
// document's normalized text plus its metadata.
type Chunk struct {
	Text     string
	Metadata map[string]any
}

// Required metadata keys, set on every chunk by the ingest runner.
const (
	MetaSource     = "source"
	MetaFileName   = "fileName"
	MetaChunkIndex = "chunkIndex"
	MetaType       = "type"
	MetaCreatedAt  = "createdAt"
)
