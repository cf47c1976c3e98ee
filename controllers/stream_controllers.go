package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/danuartha/delivery-app/events"
	"github.com/danuartha/delivery-app/middlewares"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message adalah frame yang dikirim ke client websocket.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// StreamController menyajikan feed realtime di atas Hub.
type StreamController struct {
	Hub *events.Hub
}

func NewStreamController(hub *events.Hub) *StreamController {
	return &StreamController{Hub: hub}
}

// PendingOrders -> owner menerima order baru untuk restorannya sendiri.
// Filter mencocokkan owner id di payload dengan principal koneksi ini,
// dan resolve melepas amplop supaya client hanya menerima order-nya.
func (sc *StreamController) PendingOrders(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	sc.stream(c, events.TopicPendingOrder,
		events.WithFilter(func(payload interface{}) bool {
			pending, ok := payload.(events.PendingOrder)
			return ok && pending.OwnerID == user.ID
		}),
		events.WithResolve(func(payload interface{}) interface{} {
			return payload.(events.PendingOrder).Order
		}),
	)
}

// CookedOrders -> broadcast ke semua kurir yang terhubung; kurir pertama
// yang mengambil order yang menang.
func (sc *StreamController) CookedOrders(c *gin.Context) {
	if _, ok := middlewares.CurrentUser(c); !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	sc.stream(c, events.TopicCookedOrder)
}

// OrderUpdates -> update satu order tertentu, hanya untuk customer, driver,
// atau owner restoran order itu.
func (sc *StreamController) OrderUpdates(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(c.Param("order_id"))
	orderID := uint(id)

	sc.stream(c, events.TopicOrderUpdate,
		events.WithFilter(func(payload interface{}) bool {
			order, ok := payload.(models.Order)
			if !ok || order.ID != orderID {
				return false
			}
			if order.DriverID != nil && *order.DriverID == user.ID {
				return true
			}
			if order.CustomerID != nil && *order.CustomerID == user.ID {
				return true
			}
			return order.Restaurant != nil && order.Restaurant.OwnerID == user.ID
		}),
	)
}

// stream meng-upgrade koneksi, mendaftar ke Hub, lalu memompa payload ke
// websocket sampai salah satu sisi menutup koneksi.
func (sc *StreamController) stream(c *gin.Context, topic string, opts ...events.SubscribeOption) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sub := sc.Hub.Subscribe(topic, opts...)
	defer func() {
		sc.Hub.Unsubscribe(sub)
		ws.Close()
	}()

	// Reader hanya untuk mendeteksi client menutup koneksi.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-sub.C():
			if !ok {
				return
			}
			if err := ws.WriteJSON(Message{Event: topic, Data: payload}); err != nil {
				utils.ErrorLogger.Printf("websocket write failed on %s: %v", topic, err)
				return
			}
		case <-done:
			return
		}
	}
}
