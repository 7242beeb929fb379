package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/carepoint/clinic-api/api/handlers"
)

func TestHub_BroadcastReachesConnectedClient(t *testing.T) {
	hub := handlers.NewHub()

	srv := httptest.NewServer(http.HandlerFunc(hub.LiveHandler))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	hub.Broadcast("appointment_created", map[string]string{"_id": "a1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]interface{}
	assert.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "appointment_created", got["event"])
}

func TestHub_BroadcastWithNoClientsIsANoOp(t *testing.T) {
	hub := handlers.NewHub()

	hub.Broadcast("appointment_created", nil)
}
