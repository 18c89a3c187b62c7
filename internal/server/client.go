package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"roguely-server/internal/engine"
	"roguely-server/pkg/api"
	"roguely-server/pkg/logger"
	"roguely-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client связывает одно WebSocket-соединение с сервисом.
// Команды идут в Service.Commands, кадры приходят из подписки на Hub.
type Client struct {
	Service *engine.Service
	Conn    *websocket.Conn
	Session string

	updates chan api.FrameSnapshot
	log     *logrus.Entry
}

func NewClient(svc *engine.Service, conn *websocket.Conn) *Client {
	session := utils.GenerateID()
	return &Client{
		Service: svc,
		Conn:    conn,
		Session: session,
		log:     logger.Component("client").WithField("session", session),
	}
}

// Start подписывает клиента на кадры, просит полную перерисовку и запускает пампы.
func (c *Client) Start() {
	c.updates = c.Service.Hub.Register(c.Session)
	if err := c.Service.ProcessCommand(c.Session, api.ClientCommand{Action: "REDRAW"}); err != nil {
		c.log.WithError(err).Warn("Initial redraw was not queued.")
	}
	c.log.Info("Client connected.")

	go c.writePump()
	go c.readPump()
}

// readPump читает команды клиента до ошибки соединения.
func (c *Client) readPump() {
	defer func() {
		c.Service.Hub.Unregister(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("Close after read failed.")
		}
		c.log.Info("Client disconnected.")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("Failed to set read deadline.")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("Websocket read error.")
			}
			return
		}
		if err := c.Service.ProcessCommand(c.Session, cmd); err != nil {
			c.log.WithError(err).WithField("action", cmd.Action).Debug("Command refused.")
		}
	}
}

// writePump пересылает кадры клиенту и шлет ping.
// Канал подписки закрывает Hub при отписке.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("Close after write failed.")
		}
	}()

	for {
		select {
		case frame, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("Failed to set write deadline.")
			}
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(frame); err != nil {
				c.log.WithError(err).Debug("Frame write failed.")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("Failed to set ping deadline.")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("Ping failed.")
				return
			}
		}
	}
}
