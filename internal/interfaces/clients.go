// Package interfaces defines service contracts for TealScan
package interfaces

import (
	"context"

	"github.com/tealscan/tealscan/internal/models"
)

// StatementParser provides access to the external statement parser.
// The parser owns document decryption and layout extraction; TealScan only
// consumes its structured output.
type StatementParser interface {
	// Preflight runs a cheap local sanity check on an uploaded document
	// before the (slow) parse call. It rejects non-PDF uploads.
	Preflight(doc []byte, password string) (*models.DocumentInfo, error)

	// ParseStatement submits the document and its password to the parser
	// and decodes the structured statement. A wrong password surfaces as
	// ErrBadPassword; any parse rejection aborts the whole run.
	ParseStatement(ctx context.Context, doc []byte, password string) (*models.Statement, error)
}
