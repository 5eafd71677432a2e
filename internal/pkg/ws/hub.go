package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub 管理用户的 WebSocket 连接，供任务进度推送使用。
// 同一用户允许多个连接（多标签页、重连）。
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]map[*Client]struct{}
}

// Client 一条已认证的 WebSocket 连接
type Client struct {
	UserID int64
	Conn   *websocket.Conn

	writeMu sync.Mutex // gorilla 的连接不允许并发写
}

// Message 推送给前端的消息信封
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[client.UserID] == nil {
		h.conns[client.UserID] = make(map[*Client]struct{})
	}
	h.conns[client.UserID][client] = struct{}{}

	log.Printf("User %d connected, conns: %d", client.UserID, len(h.conns[client.UserID]))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.conns[client.UserID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.conns, client.UserID)
		}
	}
	log.Printf("User %d disconnected", client.UserID)
}

// SendToUser 向用户的全部连接推送一条消息。用户不在线不算错误。
func (h *Hub) SendToUser(userID int64, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// 拷贝连接快照，写连接时不持有 hub 锁
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.writeMu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.writeMu.Unlock()
		if err != nil {
			log.Printf("Failed to push to user %d: %v", userID, err)
		}
	}
	return nil
}

// IsOnline 用户是否至少有一条活跃连接
func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID]) > 0
}

// ConnectionCount 当前总连接数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, conns := range h.conns {
		total += len(conns)
	}
	return total
}

// Shutdown 关闭所有连接，服务停机时调用
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conns := range h.conns {
		for c := range conns {
			c.Conn.Close()
		}
	}
	h.conns = make(map[int64]map[*Client]struct{})
}
