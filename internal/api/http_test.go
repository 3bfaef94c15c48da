package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acc-orientation/internal/engine"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	t.Helper()

	eng := engine.New(engine.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = eng.Run(ctx)
		close(done)
	}()

	ts := httptest.NewServer(NewServer(eng).Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-done
	})
	return ts, eng
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func fetchState(t *testing.T, ts *httptest.Server) engine.SensorState {
	t.Helper()
	resp, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st engine.SensorState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCalibrateAndState(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/command/calibrate", map[string]any{
		"up":      map[string]float64{"x": 0, "y": 0, "z": 9.81},
		"upFront": map[string]float64{"x": 0, "y": 9.81, "z": 9.81},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return fetchState(t, ts).Calibrated
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCalibrateRejectsBadReferences(t *testing.T) {
	ts, _ := newTestServer(t)

	// collinear
	resp := postJSON(t, ts.URL+"/command/calibrate", map[string]any{
		"up":      map[string]float64{"z": 1},
		"upFront": map[string]float64{"z": 2},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// zero up
	resp = postJSON(t, ts.URL+"/command/calibrate", map[string]any{
		"up":      map[string]float64{},
		"upFront": map[string]float64{"z": 1},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCalibrateInvalidJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/command/calibrate", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrientationBeforeCalibration(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/orientation")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestMeasureDecomposes(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/command/calibrate", map[string]any{
		"up":      map[string]float64{"z": 9.81},
		"upFront": map[string]float64{"y": 9.81, "z": 9.81},
	})
	resp.Body.Close()
	require.Eventually(t, func() bool {
		return fetchState(t, ts).Calibrated
	}, 2*time.Second, 10*time.Millisecond)

	resp = postJSON(t, ts.URL+"/command/measure", map[string]float64{"z": -9.81})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Eventually(t, func() bool {
		return fetchState(t, ts).Samples == 1
	}, 2*time.Second, 10*time.Millisecond)

	st := fetchState(t, ts)
	assert.InDelta(t, -9.81, st.Magnitude.Up, 1e-9)
	assert.InDelta(t, 0, st.Magnitude.Front, 1e-9)
	assert.InDelta(t, 0, st.Magnitude.Right, 1e-9)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/command/calibrate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
