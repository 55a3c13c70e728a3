// Package serializer implements the binary wire protocol of the archive. It converts
// common.Request and common.Response values to and from length prefixed frames on any
// byte stream.
//
// Frame layout (all integers big endian):
//
//	+----------------+---------+------------------------+
//	| length: uint32 | tag: u8 | body: length-1 bytes   |
//	+----------------+---------+------------------------+
//
// The declared length always equals the number of payload bytes (tag + body).
//
// Request tags:
//
//	0 Publish   body = UTF-8 document
//	1 Search    body = UTF-8 word
//	2 Retrieve  body = uint64 identifier
//
// Response tags:
//
//	0 PublishSuccess   body = uint64 identifier
//	1 SearchSuccess    body = zero or more uint64 identifiers, in store order
//	2 RetrieveSuccess  body = UTF-8 document
//	3 Failure          body = empty
//
// Error Handling:
//
//	Decoding never panics. Every failure is a *ProtocolError whose kind can be
//	checked with errors.Is against ErrTruncated, ErrUnknownVariant, ErrEncoding,
//	ErrMalformed or ErrFrameTooLarge. ReadFrame bounds the declared length before
//	allocating, so a hostile length header cannot exhaust memory.
//
// Decoding is split in two steps (ReadFrame, then DecodeRequest/DecodeResponse) so
// that callers can tell an unreadable frame from a readable but invalid payload.
//
// Thread Safety:
//
//	All functions are stateless and safe for concurrent use.
package serializer
