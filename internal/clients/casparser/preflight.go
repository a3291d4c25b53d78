package casparser

import (
	"bytes"
	"errors"

	"github.com/ledongthuc/pdf"

	"github.com/tealscan/tealscan/internal/models"
)

// ErrNotPDF means the uploaded document is not a PDF at all.
var ErrNotPDF = errors.New("casparser: document is not a PDF")

var pdfMagic = []byte("%PDF-")

// Preflight checks an uploaded document locally before the slow parse call.
// Non-PDF uploads are rejected outright. For readable PDFs the page count is
// reported; documents whose encryption the local reader cannot open are
// passed through as encrypted; decryption is the sidecar's job.
func (c *Client) Preflight(doc []byte, password string) (*models.DocumentInfo, error) {
	if !bytes.HasPrefix(doc, pdfMagic) {
		return nil, ErrNotPDF
	}

	info := &models.DocumentInfo{SizeBytes: len(doc)}

	// The reader re-invokes the password callback until it returns "";
	// offer the password once so a wrong one cannot loop.
	offered := false
	r, err := pdf.NewReaderEncrypted(bytes.NewReader(doc), int64(len(doc)), func() string {
		if offered {
			return ""
		}
		offered = true
		return password
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("Preflight reader could not open document, deferring to parser")
		info.Encrypted = true
		return info, nil
	}

	info.Pages = r.NumPage()
	info.Encrypted = password != ""
	return info, nil
}
