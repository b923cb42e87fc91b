// Package wire encodes sensor readings for transport: a fixed sequence of
// little-endian float32 values, sized by sensor kind (3 for imu and gyro,
// 1 for altitude). No framing or headers; one reading per message.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"sensorfleet/internal/fleet"
)

// Encode packs a reading of the given kind into its payload bytes.
// The value count must match the kind's reading shape.
func Encode(kind fleet.Kind, values []float32) ([]byte, error) {
	want := kind.FloatCount()
	if want == 0 {
		return nil, fmt.Errorf("unknown sensor kind %q", kind)
	}
	if len(values) != want {
		return nil, fmt.Errorf("%s reading needs %d values, got %d", kind, want, len(values))
	}

	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf, nil
}

// Decode unpacks a payload for the given kind, validating its size.
func Decode(kind fleet.Kind, payload []byte) ([]float32, error) {
	want := kind.FloatCount()
	if want == 0 {
		return nil, fmt.Errorf("unknown sensor kind %q", kind)
	}
	if len(payload) != 4*want {
		return nil, fmt.Errorf("%s payload must be %d bytes, got %d", kind, 4*want, len(payload))
	}

	values := make([]float32, want)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return values, nil
}
