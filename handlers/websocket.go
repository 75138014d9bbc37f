package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"drone-nav-backend/models"

	"github.com/gofiber/websocket/v2"
)

type Client struct {
	Conn       *websocket.Conn
	ClientType string // "web"
}

// 클라이언트 관리자
type ClientManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// 전역 클라이언트 관리자
var Manager = NewClientManager()

func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan models.WebSocketMessage, 100),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn, 16),
	}
}

// 클라이언트 관리 시작
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("클라이언트 등록: %s (%s)", client.ClientType, client.Conn.RemoteAddr())

		case conn := <-manager.unregister:
			manager.remove(conn)

		case message := <-manager.broadcast:
			for _, conn := range manager.handleBroadcast(message) {
				manager.remove(conn)
			}
		}
	}
}

func (manager *ClientManager) remove(conn *websocket.Conn) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if client, ok := manager.clients[conn]; ok {
		delete(manager.clients, conn)
		_ = conn.Close()
		log.Printf("클라이언트 해제: %s (%s)", client.ClientType, conn.RemoteAddr())
	}
}

// handleBroadcast - 모든 Web 클라이언트에게 전송, 실패한 연결 반환
func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) []*websocket.Conn {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	var failed []*websocket.Conn
	for conn, client := range manager.clients {
		switch message.Type {
		case models.MessageTypePlaybackPosition,
			models.MessageTypePlaybackComplete,
			models.MessageTypePathUpdate,
			models.MessageTypeSceneUpdate,
			models.MessageTypeSystemInfo:
		default:
			continue
		}

		if err := conn.WriteJSON(message); err != nil {
			log.Printf("전송 실패 (%s): %v", client.ClientType, err)
			failed = append(failed, conn)
		}
	}
	return failed
}

// 외부에서 호출할 수 있는 브로드캐스트 메서드 (큐가 가득 차면 버림)
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}
	select {
	case manager.broadcast <- msg:
	default:
		log.Printf("⚠️ 브로드캐스트 큐 가득 참, 메시지 버림: %s", msg.Type)
	}
}

func (manager *ClientManager) GetClientCount() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return len(manager.clients)
}

// HandlePlaybackWebSocket - 웹 클라이언트 (재생 위치 수신, 재생 제어)
func HandlePlaybackWebSocket(c *websocket.Conn) {
	client := &Client{
		Conn:       c,
		ClientType: "web",
	}

	Manager.register <- client

	defer func() {
		Manager.unregister <- c
	}()

	// 연결 확인 메시지 전송
	welcomeMsg := models.WebSocketMessage{
		Type: models.MessageTypeSystemInfo,
		Data: models.SystemInfo{
			ConnectedClients: Manager.GetClientCount(),
			ServerTime:       time.Now(),
			Message:          "웹 클라이언트 연결됨",
		},
		Timestamp: time.Now().UnixMilli(),
	}
	_ = c.WriteJSON(welcomeMsg)

	if sceneManager != nil {
		if scene := sceneManager.SceneMessage(); scene != nil {
			_ = c.WriteJSON(models.WebSocketMessage{
				Type:      models.MessageTypeSceneUpdate,
				Data:      scene,
				Timestamp: time.Now().UnixMilli(),
			})
		}
	}

	for {
		var msg models.WebSocketMessage
		err := c.ReadJSON(&msg)
		if err != nil {
			log.Printf("웹 메시지 읽기 오류: %v", err)
			break
		}

		log.Printf("웹 메시지: %s", msg.Type)
		if playbackService == nil {
			continue
		}

		switch msg.Type {
		case models.MessageTypePlaybackStart:
			req, err := decodePlaybackRequest(msg.Data)
			if err != nil {
				log.Printf("❌ 재생 요청 파싱 실패: %v", err)
				continue
			}
			if err := playbackService.Start(req.Path, time.Duration(req.DurationMs)*time.Millisecond); err != nil {
				log.Printf("❌ 재생 시작 실패: %v", err)
			}

		case models.MessageTypePlaybackStop:
			playbackService.Stop()

		default:
			log.Printf("알 수 없는 메시지 타입: %s", msg.Type)
		}
	}
}

// decodePlaybackRequest - interface{} 데이터를 PlaybackRequest로 변환
func decodePlaybackRequest(data interface{}) (models.PlaybackRequest, error) {
	var req models.PlaybackRequest
	raw, err := json.Marshal(data)
	if err != nil {
		return req, err
	}
	err = json.Unmarshal(raw, &req)
	return req, err
}
