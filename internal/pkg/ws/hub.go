// Copyright 2025 PulsePlan Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ws

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/pulseplan/pulseplan/pkg/log"
)

type client struct {
	conn   *websocket.Conn
	teamId string
	userId string
	send   chan []byte
}

// Hub 按团队分组的 websocket 广播中心
// 实现 service.MessageBroadcaster
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{} // teamId -> clients
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
	}
}

// BroadcastToTeam 向团队的全部在线连接推送
func (h *Hub) BroadcastToTeam(teamId string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[teamId] {
		select {
		case c.send <- payload:
		default:
			// 慢客户端直接丢弃本条, 不阻塞广播
		}
	}
}

// Serve 接管一条 websocket 连接, 阻塞直到连接关闭
func (h *Hub) Serve(conn *websocket.Conn, teamId, userId string) {
	c := &client{
		conn:   conn,
		teamId: teamId,
		userId: userId,
		send:   make(chan []byte, 64),
	}
	h.register(c)
	defer h.unregister(c)

	go c.writeLoop()

	// 读循环只负责探测断开, 入站消息走 HTTP 接口
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.teamId] == nil {
		h.clients[c.teamId] = make(map[*client]struct{})
	}
	h.clients[c.teamId][c] = struct{}{}
	log.Debugw("ws client connected", "teamId", c.teamId, "userId", c.userId)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.teamId]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.teamId)
		}
	}
	close(c.send)
	log.Debugw("ws client disconnected", "teamId", c.teamId, "userId", c.userId)
}

func (c *client) writeLoop() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
