package domain

// Compressor packs a finished report file before delivery.
type Compressor interface {
	Compress(sourcePath, destPath string) error
}
