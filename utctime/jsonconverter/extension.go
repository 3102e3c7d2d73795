package jsonconverter

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

var (
	timestampType     = reflect.TypeOf(utctime.Timestamp{})
	nullTimestampType = reflect.TypeOf(utctime.NullTimestamp{})
)

// Extension is a jsoniter.Extension that applies to utctime.Timestamp and utctime.NullTimestamp only.
type Extension struct {
	jsoniter.DummyExtension
}

// CanConvert reports whether the Extension handles typ.
func (*Extension) CanConvert(typ reflect2.Type) bool {
	switch typ.Type1() {
	case timestampType, nullTimestampType:
		return true
	default:
		return false
	}
}

func (*Extension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	switch typ.Type1() {
	case timestampType:
		return timestampCodec{}
	case nullTimestampType:
		return nullTimestampCodec{}
	default:
		return nil
	}
}

func (*Extension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ.Type1() {
	case timestampType:
		return timestampCodec{}
	case nullTimestampType:
		return nullTimestampCodec{}
	default:
		return nil
	}
}

// UseUTCTimestamp registers the Extension on api and returns it.
func UseUTCTimestamp(api jsoniter.API) jsoniter.API {
	api.RegisterExtension(&Extension{})

	return api
}

// NewConfigFastest returns a fresh API configured like jsoniter.ConfigFastest with the Extension registered.
func NewConfigFastest() jsoniter.API {
	return UseUTCTimestamp(jsoniter.Config{
		EscapeHTML:                    false,
		MarshalFloatWith6Digits:       true,
		ObjectFieldMustBeSimpleString: true,
	}.Froze())
}

// NewConfigCompatibleWithStandardLibrary returns a fresh API configured like
// jsoniter.ConfigCompatibleWithStandardLibrary with the Extension registered.
func NewConfigCompatibleWithStandardLibrary() jsoniter.API {
	return UseUTCTimestamp(jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze())
}

type timestampCodec struct{}

func (timestampCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	writeTimestamp(*(*utctime.Timestamp)(ptr), stream)
}

func (timestampCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return (*(*utctime.Timestamp)(ptr)).IsMin()
}

// Decode leaves the target untouched on null.
func (timestampCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	ts, present, err := readTimestamp(iter)
	if err != nil {
		reportError(iter, err)
		return
	}

	if present {
		*(*utctime.Timestamp)(ptr) = ts
	}
}

type nullTimestampCodec struct{}

func (nullTimestampCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	null := *(*utctime.NullTimestamp)(ptr)
	if !null.Valid {
		stream.WriteNil()
		return
	}

	writeTimestamp(null.Timestamp, stream)
}

func (nullTimestampCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return !(*(*utctime.NullTimestamp)(ptr)).Valid
}

func (nullTimestampCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	ts, present, err := readTimestamp(iter)
	if err != nil {
		reportError(iter, err)
		return
	}

	if !present {
		*(*utctime.NullTimestamp)(ptr) = utctime.NullTimestamp{}
		return
	}

	*(*utctime.NullTimestamp)(ptr) = utctime.NewNullTimestamp(ts)
}

func writeTimestamp(ts utctime.Timestamp, stream *jsoniter.Stream) {
	stream.WriteString(ts.ToTime().Format(time.RFC3339Nano))
}

// readTimestamp reads the next value; present is false for null.
func readTimestamp(iter *jsoniter.Iterator) (ts utctime.Timestamp, present bool, err error) {
	switch next := iter.WhatIsNext(); next {
	case jsoniter.NilValue:
		iter.ReadNil()
		return utctime.Timestamp{}, false, nil

	case jsoniter.StringValue:
		text := iter.ReadString()
		if iter.Error != nil {
			return utctime.Timestamp{}, false, nil
		}

		ts, err = fromString(text)
		if err != nil {
			return utctime.Timestamp{}, false, err
		}

		return ts, true, nil

	default:
		err = fmt.Errorf("%w: got %s", utctime.ErrSerialization, kindName(next))
		iter.Skip()

		return utctime.Timestamp{}, false, err
	}
}

// fromString treats RFC 3339 text as a date token that keeps its zone, so an offset other
// than "Z" is rejected. Any other text is parsed with "assume UTC, adjust to UTC" semantics.
func fromString(text string) (utctime.Timestamp, error) {
	if native, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return utctime.ConvertFrom(native)
	}

	return utctime.Parse(text)
}

// reportError keeps the first real error, as the iterator does. Skipping a trailing
// scalar leaves io.EOF behind, which Unmarshal would treat as success.
func reportError(iter *jsoniter.Iterator, err error) {
	if iter.Error == nil || errors.Is(iter.Error, io.EOF) {
		iter.Error = err
	}
}

func kindName(kind jsoniter.ValueType) string {
	switch kind {
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid token"
	}
}
