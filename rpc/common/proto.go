package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Request Structure
// --------------------------------------------------------------------------

// Request is a single client request. Exactly one variant is active per
// instance, selected by Type. Which of the remaining fields is used depends
// on the type of the request.
type Request struct {
	// Type of request
	Type RequestType

	Doc  string // Used for: Publish
	Word string // Used for: Search
	ID   uint64 // Used for: Retrieve
}

// NewPublishRequest creates a new Publish request
func NewPublishRequest(doc string) *Request {
	return &Request{
		Type: ReqTPublish,
		Doc:  doc,
	}
}

// NewSearchRequest creates a new Search request
func NewSearchRequest(word string) *Request {
	return &Request{
		Type: ReqTSearch,
		Word: word,
	}
}

// NewRetrieveRequest creates a new Retrieve request
func NewRetrieveRequest(id uint64) *Request {
	return &Request{
		Type: ReqTRetrieve,
		ID:   id,
	}
}

// Equal reports whether both requests carry the same variant and data.
// Fields not used by the variant are ignored.
func (r *Request) Equal(o *Request) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Type != o.Type {
		return false
	}
	switch r.Type {
	case ReqTPublish:
		return r.Doc == o.Doc
	case ReqTSearch:
		return r.Word == o.Word
	case ReqTRetrieve:
		return r.ID == o.ID
	default:
		return true
	}
}

func (r *Request) String() string {
	switch r.Type {
	case ReqTPublish:
		return fmt.Sprintf("Publish { doc: %q }", r.Doc)
	case ReqTSearch:
		return fmt.Sprintf("Search { word: %q }", r.Word)
	case ReqTRetrieve:
		return fmt.Sprintf("Retrieve { id: %d }", r.ID)
	default:
		return r.Type.String()
	}
}

// --------------------------------------------------------------------------
// Response Structure
// --------------------------------------------------------------------------

// Response is the answer to exactly one Request.
type Response struct {
	// Type of response
	Type ResponseType

	ID  uint64   // Used for: PublishSuccess
	IDs []uint64 // Used for: SearchSuccess
	Doc string   // Used for: RetrieveSuccess
}

// NewPublishSuccessResponse creates a new PublishSuccess response
func NewPublishSuccessResponse(id uint64) *Response {
	return &Response{
		Type: RespTPublishSuccess,
		ID:   id,
	}
}

// NewSearchSuccessResponse creates a new SearchSuccess response.
// The ids are kept in the order given.
func NewSearchSuccessResponse(ids []uint64) *Response {
	if ids == nil {
		ids = []uint64{}
	}
	return &Response{
		Type: RespTSearchSuccess,
		IDs:  ids,
	}
}

// NewRetrieveSuccessResponse creates a new RetrieveSuccess response
func NewRetrieveSuccessResponse(doc string) *Response {
	return &Response{
		Type: RespTRetrieveSuccess,
		Doc:  doc,
	}
}

// NewFailureResponse creates a new Failure response
func NewFailureResponse() *Response {
	return &Response{
		Type: RespTFailure,
	}
}

// IsSuccess returns true for every variant except Failure
func (r *Response) IsSuccess() bool {
	return r.Type != RespTFailure
}

// Equal reports whether both responses carry the same variant and data.
// A nil and an empty id list are considered equal.
func (r *Response) Equal(o *Response) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Type != o.Type {
		return false
	}
	switch r.Type {
	case RespTPublishSuccess:
		return r.ID == o.ID
	case RespTSearchSuccess:
		if len(r.IDs) != len(o.IDs) {
			return false
		}
		for i := range r.IDs {
			if r.IDs[i] != o.IDs[i] {
				return false
			}
		}
		return true
	case RespTRetrieveSuccess:
		return r.Doc == o.Doc
	default:
		return true
	}
}

func (r *Response) String() string {
	switch r.Type {
	case RespTPublishSuccess:
		return fmt.Sprintf("PublishSuccess(%d)", r.ID)
	case RespTSearchSuccess:
		ids := make([]string, len(r.IDs))
		for i, id := range r.IDs {
			ids[i] = strconv.FormatUint(id, 10)
		}
		return fmt.Sprintf("SearchSuccess([%s])", strings.Join(ids, ", "))
	case RespTRetrieveSuccess:
		return fmt.Sprintf("RetrieveSuccess(%q)", r.Doc)
	case RespTFailure:
		return "Failure"
	default:
		return r.Type.String()
	}
}

// --------------------------------------------------------------------------
// Message Types
// --------------------------------------------------------------------------

// RequestType is the tag byte of an encoded Request.
// The values are protocol constants.
type RequestType uint8

const (
	ReqTPublish  RequestType = 0
	ReqTSearch   RequestType = 1
	ReqTRetrieve RequestType = 2
)

// String returns the string representation of a RequestType.
func (t RequestType) String() string {
	switch t {
	case ReqTPublish:
		return "publish"
	case ReqTSearch:
		return "search"
	case ReqTRetrieve:
		return "retrieve"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ResponseType is the tag byte of an encoded Response.
// The values are protocol constants.
type ResponseType uint8

const (
	RespTPublishSuccess  ResponseType = 0
	RespTSearchSuccess   ResponseType = 1
	RespTRetrieveSuccess ResponseType = 2
	RespTFailure         ResponseType = 3
)

// String returns the string representation of a ResponseType.
func (t ResponseType) String() string {
	switch t {
	case RespTPublishSuccess:
		return "publishSuccess"
	case RespTSearchSuccess:
		return "searchSuccess"
	case RespTRetrieveSuccess:
		return "retrieveSuccess"
	case RespTFailure:
		return "failure"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}
