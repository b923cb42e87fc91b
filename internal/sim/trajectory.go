// Package sim models the ballistic launch the mock sensors observe: a
// projectile fired at 100 m/s under a 75 degree launch angle, plus the
// per-kind Gaussian noise layered on top of the true values.
package sim

import "math"

// Launch profile constants.
const (
	InitialVelocity = 100.0 // m/s
	Gravity         = 9.81  // m/s^2
	LaunchAngleDeg  = 75.0
)

var (
	launchAngle = LaunchAngleDeg * math.Pi / 180
	v0x         = InitialVelocity * math.Cos(launchAngle)
	v0y         = InitialVelocity * math.Sin(launchAngle)
)

// FlightTime returns the total time of flight, launch to impact.
func FlightTime() float64 {
	return 2 * v0y / Gravity
}

// MaxAltitude returns the apex altitude.
func MaxAltitude() float64 {
	return v0y * v0y / (2 * Gravity)
}

// Altitude returns the true altitude at time t.
func Altitude(t float64) float64 {
	return v0y*t - 0.5*Gravity*t*t
}

// Velocity returns the true velocity components at time t.
func Velocity(t float64) (vx, vy float64) {
	return v0x, v0y - Gravity*t
}

// Acceleration returns the true body acceleration at time t. In free flight
// only gravity acts, so the vector is constant.
func Acceleration(_ float64) (ax, ay, az float64) {
	return 0, -Gravity, 0
}

// AngularVelocity returns the true body rates at time t: slow sinusoidal
// tumbling phased over the flight time.
func AngularVelocity(t float64) (wx, wy, wz float64) {
	phase := t * 2 * math.Pi / FlightTime()
	wx = 0.5 * math.Sin(phase)
	wy = 0.3 * math.Cos(phase*1.5)
	wz = 0.8 * math.Sin(phase*0.7)
	return wx, wy, wz
}
