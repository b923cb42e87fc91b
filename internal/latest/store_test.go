package latest

import (
	"sync"
	"testing"
)

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore()

	s.Set("devices.imu.0", []float32{1, 2, 3})

	got := s.Get("devices.imu.0")
	if got == nil {
		t.Fatal("Get() returned nil")
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Get() = %v, want [1 2 3]", got)
	}
}

func TestStore_GetNonExistent(t *testing.T) {
	s := NewStore()

	if got := s.Get("devices.gyro.0"); got != nil {
		t.Errorf("expected nil for unseen subject, got %v", got)
	}
}

func TestStore_SetReplaces(t *testing.T) {
	s := NewStore()

	s.Set("devices.altitude.0", []float32{10})
	s.Set("devices.altitude.0", []float32{20})

	if got := s.Get("devices.altitude.0"); got[0] != 20 {
		t.Errorf("Get() = %v, want [20]", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_SetCopiesInput(t *testing.T) {
	s := NewStore()

	values := []float32{1, 2, 3}
	s.Set("devices.imu.0", values)
	values[0] = 99

	if got := s.Get("devices.imu.0"); got[0] != 1 {
		t.Errorf("stored sample aliases caller slice: got %v", got)
	}
}

func TestStore_Vector(t *testing.T) {
	s := NewStore()

	s.Set("devices.imu.0", []float32{1, 2, 3})
	s.Set("devices.altitude.0", []float32{7})

	subjects := []string{"devices.imu.0", "devices.gyro.0", "devices.altitude.0"}
	widths := []int{3, 3, 1}

	got := s.Vector(subjects, widths)

	want := []float32{1, 2, 3, 0, 0, 0, 7}
	if len(got) != len(want) {
		t.Fatalf("Vector() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vector()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStore_VectorWrongWidthReadsZero(t *testing.T) {
	s := NewStore()

	// A malformed reading must not corrupt the vector layout.
	s.Set("devices.imu.0", []float32{1})

	got := s.Vector([]string{"devices.imu.0"}, []int{3})
	if got[0] != 0 || got[1] != 0 || got[2] != 0 {
		t.Errorf("Vector() = %v, want zeros for malformed sample", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set("devices.gyro.0", []float32{1, 2, 3})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Get("devices.gyro.0")
				s.Vector([]string{"devices.gyro.0"}, []int{3})
			}
		}()
	}
	wg.Wait()
}
