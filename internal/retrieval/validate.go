package retrieval

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// DefaultMaxSize is the per-document size ceiling.
const DefaultMaxSize int64 = 50_000_000

// PDFSignature is the leading magic of a PDF file.
var PDFSignature = []byte("%PDF")

// Validator checks content signature and size.
type Validator struct {
	Signatures [][]byte
	MaxSize    int64
}

// DefaultValidator accepts PDFs up to DefaultMaxSize.
func DefaultValidator() Validator {
	return Validator{Signatures: [][]byte{PDFSignature}, MaxSize: DefaultMaxSize}
}

// CheckSignature reports whether head starts with an accepted signature.
func (v Validator) CheckSignature(head []byte) error {
	if len(v.Signatures) == 0 {
		return nil
	}
	for _, sig := range v.Signatures {
		if bytes.HasPrefix(head, sig) {
			return nil
		}
	}
	return ErrBadSignature
}

// CheckSize rejects sizes over the ceiling.
func (v Validator) CheckSize(size int64) error {
	if v.MaxSize > 0 && size > v.MaxSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, v.MaxSize)
	}
	return nil
}

// ValidateFile applies both checks to a file on disk.
func (v Validator) ValidateFile(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if err := v.CheckSize(info.Size()); err != nil {
		return info.Size(), err
	}
	f, err := os.Open(path)
	if err != nil {
		return info.Size(), err
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, v.maxSignatureLen())
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return info.Size(), err
	}
	return info.Size(), v.CheckSignature(head[:n])
}

func (v Validator) maxSignatureLen() int {
	n := 0
	for _, s := range v.Signatures {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}
