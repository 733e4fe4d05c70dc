package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// A trace file is a bare concatenation of CBOR-encoded events. There is no
// header or framing, so files from several runs can be appended and a
// writer killed mid-event leaves at most one partial item at the tail.

// ErrTruncated is returned by Reader when a trace ends inside an event.
var ErrTruncated = errors.New("trace ends mid-event")

// Decoder limits. Events are shallow; anything deeper or wider is corrupt.
const (
	maxNesting  = 8
	maxElements = 1024
)

var (
	encMode = newEncMode()
	decMode = newDecMode()
)

func newEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:          cbor.SortCoreDeterministic,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
		ShortestFloat: cbor.ShortestFloat16,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: cbor encoder mode: %v", err))
	}
	return em
}

// Unknown keys are ignored so newer traces still decode.
func newDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyQuiet,
		IndefLength:      cbor.IndefLengthAllowed,
		MaxNestedLevels:  maxNesting,
		MaxArrayElements: maxElements,
		MaxMapPairs:      maxElements,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace: cbor decoder mode: %v", err))
	}
	return dm
}

// EncodeEvent encodes an Event to CBOR.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes one CBOR item into an Event. Trailing bytes are an
// error.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	rest, err := decMode.UnmarshalFirst(data, &event)
	if err != nil {
		return Event{}, decodeErr(err)
	}
	if len(rest) > 0 {
		return Event{}, fmt.Errorf("trace: %d trailing bytes after event", len(rest))
	}
	return event, nil
}

// NewEncoder returns a streaming trace encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a streaming trace decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// decodeErr maps a short read inside an item to ErrTruncated.
func decodeErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}
