package utctime

import (
	"encoding/binary"
	"fmt"
	"time"
)

// The binary form packs the tick count into bits 0..61 and a kind into bits 62..63:
// 00 unspecified, 01 UTC, 1x local.
const (
	kindShift       = 62
	kindUnspecified = uint64(0)
	kindUTC         = uint64(1)
	ticksMask       = int64(1<<kindShift - 1)
)

// Ticks returns the number of 100 ns intervals since MinValue.
func (ts Timestamp) Ticks() int64 {
	return ts.t.Unix()*ticksPerSecond + int64(ts.t.Nanosecond())/nanosecondsPerTick + unixEpochTicks
}

// FromTicks builds a Timestamp from 100 ns intervals since MinValue.
func FromTicks(ticks int64) (Timestamp, error) {
	if ticks < 0 || ticks > MaxTicks {
		return Timestamp{}, fmt.Errorf("%w: %d ticks", ErrOutOfRange, ticks)
	}

	sinceEpoch := ticks - unixEpochTicks
	seconds, remainder := sinceEpoch/ticksPerSecond, sinceEpoch%ticksPerSecond

	if remainder < 0 {
		seconds--
		remainder += ticksPerSecond
	}

	return Timestamp{t: time.Unix(seconds, remainder*nanosecondsPerTick).UTC()}, nil
}

// ToBinary returns the 64-bit binary form with the UTC kind flag set.
func (ts Timestamp) ToBinary() int64 {
	return int64(uint64(ts.Ticks()) | kindUTC<<kindShift)
}

// FromBinary decodes the 64-bit binary form. Values of unspecified or local kind are
// rejected with ErrNotUTC unless they encode MinValue or MaxValue.
func FromBinary(encoded int64) (Timestamp, error) {
	kind := uint64(encoded) >> kindShift
	ticks := encoded & ticksMask

	if kind == kindUTC || kind == kindUnspecified {
		switch ticks {
		case 0:
			return MinValue, nil
		case MaxTicks:
			return MaxValue, nil
		}
	}

	if kind != kindUTC {
		return Timestamp{}, fmt.Errorf("%w: binary kind %s", ErrNotUTC, kindName(kind))
	}

	return FromTicks(ticks)
}

func kindName(kind uint64) string {
	switch kind {
	case kindUnspecified:
		return "unspecified"
	case kindUTC:
		return "utc"
	default:
		return "local"
	}
}

// MarshalBinary implements encoding.BinaryMarshaler as the big-endian form of ToBinary.
func (ts Timestamp) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), uint64(ts.ToBinary())), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (ts *Timestamp) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("%w: got %d", ErrInvalidBinaryLength, len(data))
	}

	decoded, err := FromBinary(int64(binary.BigEndian.Uint64(data)))
	if err != nil {
		return err
	}

	*ts = decoded

	return nil
}
