// Package hub memelihara koneksi WebSocket dasbor yang aktif dan menyiarkan
// event janji temu ke semuanya. Hub tidak menyimpan apa pun: catatan yang
// tahan lama adalah baris notifikasi, siaran hanya dorongan latensi rendah.
package hub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Envelope adalah payload yang dikirim ke setiap koneksi. Penerima memfilter
// sendiri berdasarkan staff_id; hub tidak mengalamatkan koneksi satu-satu.
type Envelope struct {
	StaffID   int       `json:"staffId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWebSocket meng-upgrade request dan mendaftarkan koneksi. Loop baca
// hanya mendeteksi penutupan; isi pesan dari klien diabaikan.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Gagal upgrade websocket: %v", err)
		return
	}

	h.add(conn)
	log.Printf("🔌 Koneksi dasbor terhubung (%d aktif)", h.Count())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
	conn.Close()
	log.Printf("🔌 Koneksi dasbor terputus (%d aktif)", h.Count())
}

// Broadcast menulis envelope ke semua koneksi terbuka. Best-effort: gagal
// tulis pada satu koneksi dicatat, koneksinya dilepas, dan pengiriman ke
// koneksi lain tetap lanjut. Tidak pernah mengembalikan error ke pemanggil.
func (h *Hub) Broadcast(staffID int, message string) {
	payload, err := json.Marshal(Envelope{
		StaffID:   staffID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("❌ Gagal serialisasi envelope: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("⚠️  Gagal kirim ke satu koneksi, dilepas: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}
