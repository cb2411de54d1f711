package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogapi/internal/models"
	"blogapi/internal/service"

	"github.com/gorilla/websocket"
)

func TestWSPostFeed_StreamsCreatedPosts(t *testing.T) {
	feed := service.NewFeedService()
	s := &service.Service{Feed: feed}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/posts"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer func() { _ = conn.Close() }()
	defer resp.Body.Close()

	// The subscriber registers inside the handler goroutine; give it a moment
	// before publishing so the post is not dropped on the floor.
	deadline := time.Now().Add(2 * time.Second)
	published := false
	for time.Now().Before(deadline) {
		feed.Publish(models.Post{ID: 1, Title: "Hi", Content: "Body", AuthorID: 7})
		_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		var env wsEnvelope
		if err := conn.ReadJSON(&env); err == nil {
			if env.Type != "post_created" {
				t.Fatalf("unexpected envelope type %q", env.Type)
			}
			data, ok := env.Data.(map[string]any)
			if !ok || data["title"] != "Hi" {
				t.Fatalf("unexpected envelope data: %+v", env.Data)
			}
			published = true
			break
		}
	}
	if !published {
		t.Fatal("never received a post_created frame")
	}
}
