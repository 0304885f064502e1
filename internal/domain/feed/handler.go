package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storefront/internal/domain/product"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // CORS middleware gates the HTTP side
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// ProductCreated implements product.Publisher.
func (h *Handler) ProductCreated(p *product.Product) {
	h.hub.Broadcast(&Event{Type: EventProductCreated, Payload: p})
}

// Subscribe godoc
// @Summary Subscribe to live storefront events over WebSocket
// @Tags Feed
// @Router /ws/products [get]
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return // Upgrade already wrote the error response
	}
	h.hub.ServeWS(conn)
}

// RegisterRoutes mounts the public feed endpoint.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/ws/products", h.Subscribe)
}
