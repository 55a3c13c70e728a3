package serializer

import (
	"bytes"
	"errors"
	"github.com/benjmnxu/ngram/rpc/common"
	"io"
	"math"
	"strings"
	"testing"
)

// testRequests creates a set of requests covering every variant and edge values
func testRequests() []*common.Request {
	return []*common.Request{
		common.NewPublishRequest("hello world"),
		common.NewPublishRequest(""),
		common.NewPublishRequest("grüße, 世界 🌍\nsecond line"),
		common.NewPublishRequest(strings.Repeat("lorem ipsum ", 4096)),
		common.NewSearchRequest("hello"),
		common.NewSearchRequest(""),
		common.NewSearchRequest("ünïcödé"),
		common.NewRetrieveRequest(0),
		common.NewRetrieveRequest(1),
		common.NewRetrieveRequest(1 << 40),
		common.NewRetrieveRequest(math.MaxUint64),
	}
}

// testResponses creates a set of responses covering every variant and edge values
func testResponses() []*common.Response {
	return []*common.Response{
		common.NewPublishSuccessResponse(0),
		common.NewPublishSuccessResponse(math.MaxUint64),
		common.NewSearchSuccessResponse(nil),
		common.NewSearchSuccessResponse([]uint64{0}),
		common.NewSearchSuccessResponse([]uint64{5, 1, 3, math.MaxUint64}),
		common.NewRetrieveSuccessResponse("goodbye"),
		common.NewRetrieveSuccessResponse(""),
		common.NewRetrieveSuccessResponse("日本語のテキスト"),
		common.NewFailureResponse(),
	}
}

// TestRequestRoundTrip tests that requests can be encoded and decoded correctly
func TestRequestRoundTrip(t *testing.T) {
	for i, req := range testRequests() {
		data, err := EncodeRequest(req)
		if err != nil {
			t.Errorf("Failed to encode request %d: %v", i, err)
			continue
		}

		result, err := ReadRequest(bytes.NewReader(data), 0)
		if err != nil {
			t.Errorf("Failed to decode request %d: %v", i, err)
			continue
		}

		if !req.Equal(result) {
			t.Errorf("Request %d mismatch:\nOriginal: %v\nDecoded:  %v", i, req, result)
		}
	}
}

// TestResponseRoundTrip tests that responses can be encoded and decoded correctly
func TestResponseRoundTrip(t *testing.T) {
	for i, resp := range testResponses() {
		var buf bytes.Buffer
		if err := WriteResponse(&buf, resp); err != nil {
			t.Errorf("Failed to write response %d: %v", i, err)
			continue
		}

		result, err := ReadResponse(&buf, 0)
		if err != nil {
			t.Errorf("Failed to read response %d: %v", i, err)
			continue
		}

		if !resp.Equal(result) {
			t.Errorf("Response %d mismatch:\nOriginal: %v\nDecoded:  %v", i, resp, result)
		}

		if buf.Len() != 0 {
			t.Errorf("Response %d: %d bytes left on the stream", i, buf.Len())
		}
	}
}

// TestWireLayout pins the exact bytes of the wire format
func TestWireLayout(t *testing.T) {
	tests := []struct {
		name string
		enc  func() ([]byte, error)
		want []byte
	}{
		{
			name: "Publish",
			enc:  func() ([]byte, error) { return EncodeRequest(common.NewPublishRequest("hi")) },
			want: []byte{0, 0, 0, 3, 0, 'h', 'i'},
		},
		{
			name: "Search",
			enc:  func() ([]byte, error) { return EncodeRequest(common.NewSearchRequest("a")) },
			want: []byte{0, 0, 0, 2, 1, 'a'},
		},
		{
			name: "Retrieve",
			enc:  func() ([]byte, error) { return EncodeRequest(common.NewRetrieveRequest(258)) },
			want: []byte{0, 0, 0, 9, 2, 0, 0, 0, 0, 0, 0, 1, 2},
		},
		{
			name: "PublishSuccess",
			enc:  func() ([]byte, error) { return EncodeResponse(common.NewPublishSuccessResponse(1)) },
			want: []byte{0, 0, 0, 9, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		},
		{
			name: "SearchSuccess",
			enc: func() ([]byte, error) {
				return EncodeResponse(common.NewSearchSuccessResponse([]uint64{0, 2}))
			},
			want: []byte{0, 0, 0, 17, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
		},
		{
			name: "EmptySearchSuccess",
			enc:  func() ([]byte, error) { return EncodeResponse(common.NewSearchSuccessResponse(nil)) },
			want: []byte{0, 0, 0, 1, 1},
		},
		{
			name: "RetrieveSuccess",
			enc:  func() ([]byte, error) { return EncodeResponse(common.NewRetrieveSuccessResponse("ok")) },
			want: []byte{0, 0, 0, 3, 2, 'o', 'k'},
		},
		{
			name: "Failure",
			enc:  func() ([]byte, error) { return EncodeResponse(common.NewFailureResponse()) },
			want: []byte{0, 0, 0, 1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.enc()
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Expected % x, got % x", tt.want, got)
			}
		})
	}
}

// TestTruncatedFrames cuts every encoded frame at every position and expects ErrTruncated
func TestTruncatedFrames(t *testing.T) {
	t.Run("Requests", func(t *testing.T) {
		for i, req := range testRequests()[:3] {
			data, err := EncodeRequest(req)
			if err != nil {
				t.Fatalf("Failed to encode request %d: %v", i, err)
			}
			for cut := 0; cut < len(data); cut++ {
				_, err := ReadRequest(bytes.NewReader(data[:cut]), 0)
				if !errors.Is(err, ErrTruncated) {
					t.Fatalf("Request %d cut at %d: expected ErrTruncated, got %v", i, cut, err)
				}
			}
		}
	})

	t.Run("Responses", func(t *testing.T) {
		for i, resp := range testResponses() {
			data, err := EncodeResponse(resp)
			if err != nil {
				t.Fatalf("Failed to encode response %d: %v", i, err)
			}
			for cut := 0; cut < len(data); cut++ {
				_, err := ReadResponse(bytes.NewReader(data[:cut]), 0)
				if !errors.Is(err, ErrTruncated) {
					t.Fatalf("Response %d cut at %d: expected ErrTruncated, got %v", i, cut, err)
				}
			}
		}
	})
}

// TestUnknownVariants checks that tags outside the defined sets are rejected
func TestUnknownVariants(t *testing.T) {
	for tag := 3; tag < 256; tag++ {
		if _, err := DecodeRequest([]byte{byte(tag), 0, 0, 0, 0, 0, 0, 0, 1}); !errors.Is(err, ErrUnknownVariant) {
			t.Fatalf("Request tag %d: expected ErrUnknownVariant, got %v", tag, err)
		}
	}
	for tag := 4; tag < 256; tag++ {
		if _, err := DecodeResponse([]byte{byte(tag)}); !errors.Is(err, ErrUnknownVariant) {
			t.Fatalf("Response tag %d: expected ErrUnknownVariant, got %v", tag, err)
		}
	}

	if _, err := EncodeRequest(&common.Request{Type: 7}); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Expected ErrUnknownVariant when encoding an unknown request, got %v", err)
	}
	if _, err := EncodeResponse(&common.Response{Type: 9}); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Expected ErrUnknownVariant when encoding an unknown response, got %v", err)
	}
}

// TestInvalidEncoding checks that invalid UTF-8 is rejected in both directions
func TestInvalidEncoding(t *testing.T) {
	invalid := []byte{0xff, 0xfe, 'x'}

	for _, tag := range []byte{byte(common.ReqTPublish), byte(common.ReqTSearch)} {
		if _, err := DecodeRequest(append([]byte{tag}, invalid...)); !errors.Is(err, ErrEncoding) {
			t.Errorf("Request tag %d: expected ErrEncoding, got %v", tag, err)
		}
	}
	if _, err := DecodeResponse(append([]byte{byte(common.RespTRetrieveSuccess)}, invalid...)); !errors.Is(err, ErrEncoding) {
		t.Errorf("RetrieveSuccess: expected ErrEncoding, got %v", err)
	}

	if _, err := EncodeRequest(common.NewPublishRequest(string(invalid))); !errors.Is(err, ErrEncoding) {
		t.Errorf("Expected ErrEncoding when encoding invalid text, got %v", err)
	}
}

// TestMalformedPayloads checks fixed width fields and empty payloads
func TestMalformedPayloads(t *testing.T) {
	t.Run("Requests", func(t *testing.T) {
		cases := map[string][]byte{
			"Empty":         {},
			"ShortRetrieve": {byte(common.ReqTRetrieve), 0, 0, 1},
			"LongRetrieve":  {byte(common.ReqTRetrieve), 0, 0, 0, 0, 0, 0, 0, 1, 9},
			"BareRetrieve":  {byte(common.ReqTRetrieve)},
		}
		for name, payload := range cases {
			if _, err := DecodeRequest(payload); !errors.Is(err, ErrMalformed) {
				t.Errorf("%s: expected ErrMalformed, got %v", name, err)
			}
		}
	})

	t.Run("Responses", func(t *testing.T) {
		cases := map[string][]byte{
			"Empty":           {},
			"ShortPublish":    {byte(common.RespTPublishSuccess), 1, 2, 3},
			"PartialSearch":   {byte(common.RespTSearchSuccess), 0, 0, 0, 0, 0, 0, 0, 1, 7},
			"FailureWithData": {byte(common.RespTFailure), 0},
		}
		for name, payload := range cases {
			if _, err := DecodeResponse(payload); !errors.Is(err, ErrMalformed) {
				t.Errorf("%s: expected ErrMalformed, got %v", name, err)
			}
		}
	})

	t.Run("ZeroLengthFrame", func(t *testing.T) {
		_, err := ReadRequest(bytes.NewReader([]byte{0, 0, 0, 0}), 0)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Expected ErrMalformed for a zero length frame, got %v", err)
		}
	})
}

// TestFrameTooLarge checks that the declared length is bounded before reading
func TestFrameTooLarge(t *testing.T) {
	data, err := EncodeRequest(common.NewPublishRequest(strings.Repeat("x", 100)))
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	if _, err := ReadRequest(bytes.NewReader(data), 50); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge, got %v", err)
	}

	// header claims 4 GiB but no body follows
	if _, err := ReadFrame(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}), 0); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge for a huge declared length, got %v", err)
	}

	if _, err := ReadRequest(bytes.NewReader(data), 101); err != nil {
		t.Errorf("Frame at the limit should be accepted: %v", err)
	}
}

// TestConsecutiveFrames checks that a reader stops exactly at the frame boundary
func TestConsecutiveFrames(t *testing.T) {
	var buf bytes.Buffer
	for _, req := range testRequests() {
		if err := WriteRequest(&buf, req); err != nil {
			t.Fatalf("Failed to write request: %v", err)
		}
	}

	for i, want := range testRequests() {
		got, err := ReadRequest(&buf, 0)
		if err != nil {
			t.Fatalf("Failed to read request %d: %v", i, err)
		}
		if !want.Equal(got) {
			t.Errorf("Request %d mismatch: expected %v, got %v", i, want, got)
		}
	}

	if _, err := ReadRequest(&buf, 0); !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated on an exhausted stream, got %v", err)
	}
}

// TestNilValues checks that encoding nil fails instead of panicking
func TestNilValues(t *testing.T) {
	if _, err := EncodeRequest(nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for a nil request, got %v", err)
	}
	if _, err := EncodeResponse(nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for a nil response, got %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRequest(&buf, nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed from WriteRequest, got %v", err)
	}
	if err := WriteResponse(&buf, nil); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed from WriteResponse, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Nothing must be written for nil values, got %d bytes", buf.Len())
	}
}

// failingReader returns a non EOF error
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

// TestReadErrorsAreWrapped checks that non EOF errors keep their cause
func TestReadErrorsAreWrapped(t *testing.T) {
	_, err := ReadFrame(failingReader{}, 0)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, ErrTruncated) {
		t.Errorf("Unexpected ErrTruncated for a failing reader: %v", err)
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Expected the cause to be preserved, got %v", err)
	}
}
