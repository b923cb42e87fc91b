package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"sensorfleet/internal/fleet"
)

// Noise variance per sensor kind, applied independently to each component.
var noiseVariances = map[fleet.Kind]float64{
	fleet.KindIMU:      100,
	fleet.KindGyro:     0.01,
	fleet.KindAltitude: 1.0,
}

// Sampler produces noisy readings of one sensor kind.
type Sampler struct {
	kind  fleet.Kind
	noise distuv.Normal
}

// NewSampler creates a sampler for kind, seeded so tests can reproduce a
// noise stream.
func NewSampler(kind fleet.Kind, seed uint64) (*Sampler, error) {
	variance, ok := noiseVariances[kind]
	if !ok {
		return nil, fmt.Errorf("no noise model for sensor kind %q", kind)
	}

	return &Sampler{
		kind: kind,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: math.Sqrt(variance),
			Src:   rand.NewPCG(seed, seed),
		},
	}, nil
}

// Sample returns a noisy reading at time t, shaped for the sampler's kind:
// 3 values for imu and gyro, 1 for altitude.
func (s *Sampler) Sample(t float64) []float32 {
	switch s.kind {
	case fleet.KindIMU:
		ax, ay, az := Acceleration(t)
		return []float32{
			float32(ax + s.noise.Rand()),
			float32(ay + s.noise.Rand()),
			float32(az + s.noise.Rand()),
		}
	case fleet.KindGyro:
		wx, wy, wz := AngularVelocity(t)
		return []float32{
			float32(wx + s.noise.Rand()),
			float32(wy + s.noise.Rand()),
			float32(wz + s.noise.Rand()),
		}
	case fleet.KindAltitude:
		return []float32{float32(Altitude(t) + s.noise.Rand())}
	default:
		return nil
	}
}

// Done reports whether the trajectory has completed at time t.
func (s *Sampler) Done(t float64) bool {
	return t > FlightTime()
}
