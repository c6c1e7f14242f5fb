package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, h *Hub) (string, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	return url, server.Close
}

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for h.Count() != want {
		if time.Now().After(deadline) {
			t.Fatalf("jumlah koneksi tidak mencapai %d (sekarang %d)", want, h.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastEnvelope(t *testing.T) {
	h := NewHub()
	url, stop := startTestServer(t, h)
	defer stop()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForCount(t, h, 1)

	before := time.Now().UTC().Add(-time.Second)
	h.Broadcast(7, "Janji temu dengan Budi Santoso telah sampai di lobby sekolah, segera temui!")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(payload, &envelope))
	assert.Equal(t, 7, envelope.StaffID)
	assert.Equal(t, "Janji temu dengan Budi Santoso telah sampai di lobby sekolah, segera temui!", envelope.Message)
	assert.True(t, envelope.Timestamp.After(before))

	// nama field di kawat harus stabil untuk klien dasbor
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Contains(t, raw, "staffId")
	assert.Contains(t, raw, "message")
	assert.Contains(t, raw, "timestamp")
}

func TestBroadcastReachesAllConnections(t *testing.T) {
	h := NewHub()
	url, stop := startTestServer(t, h)
	defer stop()

	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()
		conns = append(conns, conn)
	}

	waitForCount(t, h, 3)
	h.Broadcast(1, "tamu tiba")

	for i, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err, "koneksi %d tidak menerima siaran", i)

		var envelope Envelope
		require.NoError(t, json.Unmarshal(payload, &envelope))
		assert.Equal(t, "tamu tiba", envelope.Message)
	}
}

func TestBroadcastWithoutConnections(t *testing.T) {
	h := NewHub()

	// tidak boleh panic atau macet tanpa satu pun koneksi
	h.Broadcast(1, "tidak ada yang mendengar")
	assert.Equal(t, 0, h.Count())
}

func TestDisconnectRemovesConnection(t *testing.T) {
	h := NewHub()
	url, stop := startTestServer(t, h)
	defer stop()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	waitForCount(t, h, 1)
	conn.Close()
	waitForCount(t, h, 0)

	// siaran setelah semua klien pergi tetap aman
	h.Broadcast(1, "masih aman")
}
