package store

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IArchive is the interface of a document archive.
// Implementations must be safe for concurrent use by multiple goroutines.
// Identifiers are unique and stable: a returned id always retrieves the same
// document for the life of the archive.
type IArchive interface {
	// Publish stores a document and returns its new identifier.
	Publish(doc string) (id uint64, err error)
	// Search returns the identifiers of all documents containing word, in ascending order.
	// An unknown word yields an empty result, not an error.
	Search(word string) (ids []uint64, err error)
	// Retrieve returns the document for an identifier. The boolean return value
	// indicates whether a document with that id exists.
	Retrieve(id uint64) (doc string, found bool, err error)
	// Info returns metadata about the archive.
	// It is not guaranteed that all fields are up-to-date under concurrent writes!
	Info() (info ArchiveInfo, err error)
}

// ArchiveInfo describes the content of an archive
type ArchiveInfo struct {
	Documents   uint64 `json:"documents"`
	Words       uint64 `json:"words"`
	RawBytes    uint64 `json:"raw_bytes"`
	StoredBytes uint64 `json:"stored_bytes"`
	Compression string `json:"compression"`

	// estimated from a histogram of published document sizes
	AvgDocumentBytes    uint64 `json:"avg_document_bytes"`
	MedianDocumentBytes uint64 `json:"median_document_bytes"`
	P99DocumentBytes    uint64 `json:"p99_document_bytes"`
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ArchiveError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new archive error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Invalid operation.
	RetCCorrupted                       // 3: Stored data could not be decoded.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCCorrupted:
		return "Corrupted"
	default:
		return "Unknown"
	}
}
