package service

import (
	"testing"

	"blogapi/internal/models"
)

func TestFeedService_DeliversToSubscriber(t *testing.T) {
	feed := NewFeedService()
	ch, cancel := feed.Subscribe()
	defer cancel()

	feed.Publish(models.Post{ID: 1, Title: "Hi"})

	select {
	case p := <-ch:
		if p.ID != 1 {
			t.Fatalf("unexpected post: %+v", p)
		}
	default:
		t.Fatal("expected a buffered post on the subscriber channel")
	}
}

func TestFeedService_CancelClosesChannelAndIsIdempotent(t *testing.T) {
	feed := NewFeedService()
	ch, cancel := feed.Subscribe()

	cancel()
	cancel() // second call must be a no-op

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after cancel")
	}

	// publishing after cancel must not panic or block
	feed.Publish(models.Post{ID: 2})
}

func TestFeedService_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	feed := NewFeedService()
	ch, cancel := feed.Subscribe()
	defer cancel()

	// Overfill the buffer; Publish must never block.
	for i := 0; i < feedBuffer+3; i++ {
		feed.Publish(models.Post{ID: i + 1})
	}

	if got := len(ch); got != feedBuffer {
		t.Fatalf("expected %d buffered posts, got %d", feedBuffer, got)
	}
}

func TestFeedService_MultipleSubscribers(t *testing.T) {
	feed := NewFeedService()
	ch1, cancel1 := feed.Subscribe()
	ch2, cancel2 := feed.Subscribe()
	defer cancel1()
	defer cancel2()

	feed.Publish(models.Post{ID: 5})

	if len(ch1) != 1 || len(ch2) != 1 {
		t.Fatalf("expected both subscribers to receive the post, got %d and %d", len(ch1), len(ch2))
	}
}
