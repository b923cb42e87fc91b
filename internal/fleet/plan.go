package fleet

import "fmt"

// Kind identifies which simulated sensor type a worker instance represents.
type Kind string

const (
	KindIMU      Kind = "imu"
	KindGyro     Kind = "gyro"
	KindAltitude Kind = "altitude"
)

// ParseKind validates a sensor kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIMU, KindGyro, KindAltitude:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown sensor kind %q (expected imu, gyro or altitude)", s)
	}
}

// FloatCount returns how many float32 values a single reading of this kind carries.
func (k Kind) FloatCount() int {
	switch k {
	case KindIMU, KindGyro:
		return 3
	case KindAltitude:
		return 1
	default:
		return 0
	}
}

// Slot is one worker position in the fleet: a sensor kind plus an ordinal
// index distinguishing multiple instances of the same kind.
type Slot struct {
	Kind  Kind
	Index int
}

// Subject returns the broker subject this slot publishes on.
func (s Slot) Subject() string {
	return fmt.Sprintf("devices.%s.%d", s.Kind, s.Index)
}

func (s Slot) String() string {
	return fmt.Sprintf("%s%d", s.Kind, s.Index)
}

// Group is one entry of the fleet plan: how many instances of a kind to run.
type Group struct {
	Kind  Kind
	Count int
}

// Plan is an ordered list of sensor groups. Enumeration order is fixed, so
// spawn order is deterministic and repeatable across runs.
type Plan []Group

// DefaultPlan is the fixed fleet configuration: 3 IMUs, 2 gyroscopes,
// 4 altimeters.
func DefaultPlan() Plan {
	return Plan{
		{Kind: KindIMU, Count: 3},
		{Kind: KindGyro, Count: 2},
		{Kind: KindAltitude, Count: 4},
	}
}

// Slots expands the plan into the ordered (kind, index) pairs to spawn,
// indices counting up from 0 within each group.
func (p Plan) Slots() []Slot {
	var slots []Slot
	for _, g := range p {
		for i := 0; i < g.Count; i++ {
			slots = append(slots, Slot{Kind: g.Kind, Index: i})
		}
	}
	return slots
}

// Subjects returns the broker subjects of every slot, in plan order.
func (p Plan) Subjects() []string {
	slots := p.Slots()
	subjects := make([]string, len(slots))
	for i, s := range slots {
		subjects[i] = s.Subject()
	}
	return subjects
}

// VectorSize returns the total number of float32 values a full measurement
// vector over this plan holds.
func (p Plan) VectorSize() int {
	n := 0
	for _, g := range p {
		n += g.Count * g.Kind.FloatCount()
	}
	return n
}
