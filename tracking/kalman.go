package tracking

import "math"

// KalmanFilter implements a 2D constant-velocity Kalman filter over pencil
// positions. Time is measured in ticks so the filter is deterministic.
type KalmanFilter struct {
	// State vector [x, y, vx, vy]
	state [4]float64
	// Covariance matrix
	P [4][4]float64
	// Process noise
	Q [4][4]float64
	// Measurement noise
	R [2][2]float64
	// Initialized flag
	initialized bool
}

// NewKalmanFilter creates a new Kalman filter
func NewKalmanFilter(processNoise, measurementNoise float64) *KalmanFilter {
	kf := &KalmanFilter{}
	kf.resetCovariance()

	dt := 1.0
	q := processNoise
	kf.Q = [4][4]float64{
		{q * dt * dt * dt * dt / 4, 0, q * dt * dt * dt / 2, 0},
		{0, q * dt * dt * dt * dt / 4, 0, q * dt * dt * dt / 2},
		{q * dt * dt * dt / 2, 0, q * dt * dt, 0},
		{0, q * dt * dt * dt / 2, 0, q * dt * dt},
	}

	kf.R = [2][2]float64{
		{measurementNoise, 0},
		{0, measurementNoise},
	}

	return kf
}

// Update feeds a measurement taken dt ticks after the previous one and
// returns the filtered position.
func (kf *KalmanFilter) Update(x, y, dt float64) (float64, float64) {
	if !kf.initialized {
		kf.state = [4]float64{x, y, 0, 0}
		kf.initialized = true
		return x, y
	}
	if dt <= 0 {
		dt = 1
	}

	F := [4][4]float64{
		{1, 0, dt, 0},
		{0, 1, 0, dt},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}

	predicted := [4]float64{
		kf.state[0] + kf.state[2]*dt,
		kf.state[1] + kf.state[3]*dt,
		kf.state[2],
		kf.state[3],
	}
	P := kf.predictCovariance(F)

	innovation := [2]float64{x - predicted[0], y - predicted[1]}
	S := kf.innovationCovariance(P)
	K, ok := kalmanGain(P, S)
	if !ok {
		kf.state = predicted
		kf.P = P
		return kf.state[0], kf.state[1]
	}

	for i := 0; i < 4; i++ {
		kf.state[i] = predicted[i] + K[i][0]*innovation[0] + K[i][1]*innovation[1]
	}
	kf.updateCovariance(K, P)

	return kf.state[0], kf.state[1]
}

// predictCovariance returns F * P * F' + Q
func (kf *KalmanFilter) predictCovariance(F [4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					sum += F[i][k] * kf.P[k][l] * F[j][l]
				}
			}
			out[i][j] = sum + kf.Q[i][j]
		}
	}
	return out
}

// innovationCovariance returns H * P * H' + R where H selects the position.
func (kf *KalmanFilter) innovationCovariance(P [4][4]float64) [2][2]float64 {
	return [2][2]float64{
		{P[0][0] + kf.R[0][0], P[0][1] + kf.R[0][1]},
		{P[1][0] + kf.R[1][0], P[1][1] + kf.R[1][1]},
	}
}

// kalmanGain returns P * H' * inv(S).
func kalmanGain(P [4][4]float64, S [2][2]float64) ([4][2]float64, bool) {
	var K [4][2]float64

	det := S[0][0]*S[1][1] - S[0][1]*S[1][0]
	if math.Abs(det) < 1e-12 {
		return K, false
	}
	inv := [2][2]float64{
		{S[1][1] / det, -S[0][1] / det},
		{-S[1][0] / det, S[0][0] / det},
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			K[i][j] = P[i][0]*inv[0][j] + P[i][1]*inv[1][j]
		}
	}
	return K, true
}

// updateCovariance sets P = (I - K*H) * P
func (kf *KalmanFilter) updateCovariance(K [4][2]float64, P [4][4]float64) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			kf.P[i][j] = P[i][j] - (K[i][0]*P[0][j] + K[i][1]*P[1][j])
		}
	}
}

// GetVelocity returns the current velocity estimate in pixels per tick
func (kf *KalmanFilter) GetVelocity() (float64, float64) {
	if !kf.initialized {
		return 0, 0
	}
	return kf.state[2], kf.state[3]
}

// Reset resets the Kalman filter
func (kf *KalmanFilter) Reset() {
	kf.initialized = false
	kf.state = [4]float64{}
	kf.resetCovariance()
}

func (kf *KalmanFilter) resetCovariance() {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			kf.P[i][j] = 0
		}
		kf.P[i][i] = 1000.0 // High initial uncertainty
	}
}

// Smoother filters centroid jitter. An absent point resets the filter, so
// re-acquisition starts from the raw measurement.
type Smoother struct {
	kf *KalmanFilter
}

// NewSmoother creates a smoother with noise levels tuned for webcam
// centroids at 30 fps.
func NewSmoother() *Smoother {
	return &Smoother{kf: NewKalmanFilter(0.5, 10.0)}
}

// Filter returns the smoothed point.
func (s *Smoother) Filter(p Point) Point {
	if !p.Valid() {
		s.kf.Reset()
		return NoPoint
	}
	x, y := s.kf.Update(float64(p.X), float64(p.Y), 1)
	return At(int(math.Round(x)), int(math.Round(y)))
}
