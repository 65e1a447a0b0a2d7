package spectator

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arpaint/canvas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub("test-session")
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(NewServer(hub).Router())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func snapshot(rev uint64) Snapshot {
	moves := []canvas.DrawMove{
		canvas.NewDot(image.Pt(10, 10), 5, canvas.Red),
		canvas.NewLine(image.Pt(10, 10), image.Pt(40, 20), 5, canvas.Red),
	}
	return Snapshot{
		SessionID: "test-session",
		Revision:  rev,
		Color:     "red",
		Thickness: 5,
		Mode:      "freehand",
		Source:    "MOUSE",
		MoveCount: len(moves),
		UpdatedAt: time.Now(),
		Moves:     moves,
		Frame:     []byte("\x89PNG fake"),
	}
}

func getJSON(t *testing.T, url string, into interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

func TestStatusBeforeAnySnapshot(t *testing.T) {
	_, srv := startHub(t)

	var got Snapshot
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/status", &got))
	assert.Equal(t, "test-session", got.SessionID)
	assert.Zero(t, got.Revision)

	resp, err := http.Get(srv.URL + "/api/frame.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishUpdatesEndpoints(t *testing.T) {
	hub, srv := startHub(t)

	require.True(t, hub.Publish(snapshot(3)))
	require.Eventually(t, func() bool { return hub.Latest().Revision == 3 }, time.Second, 5*time.Millisecond)

	var status Snapshot
	getJSON(t, srv.URL+"/api/status", &status)
	assert.Equal(t, uint64(3), status.Revision)
	assert.Equal(t, "red", status.Color)
	assert.Equal(t, 2, status.MoveCount)
	assert.Nil(t, status.Moves, "moves are served separately")

	var moves struct {
		Revision uint64            `json:"revision"`
		Moves    []canvas.DrawMove `json:"moves"`
	}
	getJSON(t, srv.URL+"/api/moves", &moves)
	assert.Equal(t, uint64(3), moves.Revision)
	require.Len(t, moves.Moves, 2)
	assert.Equal(t, canvas.KindLine, moves.Moves[1].Kind)
	assert.Equal(t, image.Pt(40, 20), moves.Moves[1].End)

	resp, err := http.Get(srv.URL + "/api/frame.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG fake"), body)
}

func TestPublishDropsWhenBusy(t *testing.T) {
	// no Run loop: the buffer fills and further snapshots are dropped
	hub := NewHub("idle")
	for i := 0; i < updateBuffer; i++ {
		require.True(t, hub.Publish(snapshot(uint64(i))))
	}
	assert.False(t, hub.Publish(snapshot(99)))
}

func TestWebSocketReceivesStatus(t *testing.T) {
	hub, srv := startHub(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() Snapshot {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var s Snapshot
		require.NoError(t, json.Unmarshal(data, &s))
		return s
	}

	initial := read()
	assert.Equal(t, "test-session", initial.SessionID)
	assert.Zero(t, initial.Revision)

	require.True(t, hub.Publish(snapshot(7)))
	got := read()
	assert.Equal(t, uint64(7), got.Revision)
	assert.Equal(t, "freehand", got.Mode)
	assert.Equal(t, "MOUSE", got.Source)
}
