package serializer

import (
	"encoding/binary"
	"github.com/benjmnxu/ngram/rpc/common"
	"unicode/utf8"
)

// Sizes of the fixed width fields of the wire format
const (
	lengthSize = 4 // uint32 payload length
	tagSize    = 1 // variant tag
	idSize     = 8 // uint64 identifier
)

// --------------------------------------------------------------------------
// Request Payloads
// --------------------------------------------------------------------------

// encodeRequestPayload returns tag + body of a request
func encodeRequestPayload(req *common.Request) ([]byte, error) {
	if req == nil {
		return nil, newProtocolError(ErrMalformed, "nil request")
	}
	switch req.Type {
	case common.ReqTPublish:
		return encodeText(byte(req.Type), req.Doc)
	case common.ReqTSearch:
		return encodeText(byte(req.Type), req.Word)
	case common.ReqTRetrieve:
		return encodeID(byte(req.Type), req.ID), nil
	default:
		return nil, newProtocolError(ErrUnknownVariant, "cannot encode request with tag %d", req.Type)
	}
}

// DecodeRequest decodes a request payload (tag + body, without the length header).
// It never panics; every malformed input yields a *ProtocolError.
func DecodeRequest(payload []byte) (*common.Request, error) {
	if len(payload) < tagSize {
		return nil, newProtocolError(ErrMalformed, "empty request payload, missing tag byte")
	}

	tag := common.RequestType(payload[0])
	body := payload[tagSize:]

	switch tag {
	case common.ReqTPublish:
		doc, err := decodeText(body, "document")
		if err != nil {
			return nil, err
		}
		return common.NewPublishRequest(doc), nil

	case common.ReqTSearch:
		word, err := decodeText(body, "word")
		if err != nil {
			return nil, err
		}
		return common.NewSearchRequest(word), nil

	case common.ReqTRetrieve:
		id, err := decodeID(body)
		if err != nil {
			return nil, err
		}
		return common.NewRetrieveRequest(id), nil

	default:
		return nil, newProtocolError(ErrUnknownVariant, "request tag %d", payload[0])
	}
}

// --------------------------------------------------------------------------
// Response Payloads
// --------------------------------------------------------------------------

// encodeResponsePayload returns tag + body of a response
func encodeResponsePayload(resp *common.Response) ([]byte, error) {
	if resp == nil {
		return nil, newProtocolError(ErrMalformed, "nil response")
	}
	switch resp.Type {
	case common.RespTPublishSuccess:
		return encodeID(byte(resp.Type), resp.ID), nil

	case common.RespTSearchSuccess:
		payload := make([]byte, tagSize+idSize*len(resp.IDs))
		payload[0] = byte(resp.Type)
		pos := tagSize
		for _, id := range resp.IDs {
			binary.BigEndian.PutUint64(payload[pos:pos+idSize], id)
			pos += idSize
		}
		return payload, nil

	case common.RespTRetrieveSuccess:
		return encodeText(byte(resp.Type), resp.Doc)

	case common.RespTFailure:
		return []byte{byte(resp.Type)}, nil

	default:
		return nil, newProtocolError(ErrUnknownVariant, "cannot encode response with tag %d", resp.Type)
	}
}

// DecodeResponse decodes a response payload (tag + body, without the length header).
// It never panics; every malformed input yields a *ProtocolError.
func DecodeResponse(payload []byte) (*common.Response, error) {
	if len(payload) < tagSize {
		return nil, newProtocolError(ErrMalformed, "empty response payload, missing tag byte")
	}

	tag := common.ResponseType(payload[0])
	body := payload[tagSize:]

	switch tag {
	case common.RespTPublishSuccess:
		id, err := decodeID(body)
		if err != nil {
			return nil, err
		}
		return common.NewPublishSuccessResponse(id), nil

	case common.RespTSearchSuccess:
		if len(body)%idSize != 0 {
			return nil, newProtocolError(ErrMalformed, "search result of %d bytes is not a multiple of %d", len(body), idSize)
		}
		ids := make([]uint64, 0, len(body)/idSize)
		for pos := 0; pos < len(body); pos += idSize {
			ids = append(ids, binary.BigEndian.Uint64(body[pos:pos+idSize]))
		}
		return common.NewSearchSuccessResponse(ids), nil

	case common.RespTRetrieveSuccess:
		doc, err := decodeText(body, "document")
		if err != nil {
			return nil, err
		}
		return common.NewRetrieveSuccessResponse(doc), nil

	case common.RespTFailure:
		if len(body) != 0 {
			return nil, newProtocolError(ErrMalformed, "failure response carries %d unexpected bytes", len(body))
		}
		return common.NewFailureResponse(), nil

	default:
		return nil, newProtocolError(ErrUnknownVariant, "response tag %d", payload[0])
	}
}

// --------------------------------------------------------------------------
// Field Helpers
// --------------------------------------------------------------------------

// encodeText writes tag + UTF-8 text
func encodeText(tag byte, text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, newProtocolError(ErrEncoding, "text is not valid UTF-8")
	}
	payload := make([]byte, tagSize+len(text))
	payload[0] = tag
	copy(payload[tagSize:], text)
	return payload, nil
}

// encodeID writes tag + big endian uint64
func encodeID(tag byte, id uint64) []byte {
	payload := make([]byte, tagSize+idSize)
	payload[0] = tag
	binary.BigEndian.PutUint64(payload[tagSize:], id)
	return payload
}

// decodeText validates and converts a text body
func decodeText(body []byte, field string) (string, error) {
	if !utf8.Valid(body) {
		return "", newProtocolError(ErrEncoding, "%s is not valid UTF-8", field)
	}
	return string(body), nil
}

// decodeID reads a body that must be exactly one identifier
func decodeID(body []byte) (uint64, error) {
	if len(body) != idSize {
		return 0, newProtocolError(ErrMalformed, "identifier must be %d bytes, got %d", idSize, len(body))
	}
	return binary.BigEndian.Uint64(body), nil
}
