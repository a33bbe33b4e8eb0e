package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPubSub(t *testing.T) PubSub {
	t.Helper()
	ps := NewPubSub(slog.New(slog.DiscardHandler))
	t.Cleanup(func() { _ = ps.Close() })
	return ps
}

func newTestRelay(t *testing.T, ps PubSub) *Relay {
	t.Helper()
	bs := services.NewBookService(repomanager.NewMemoryStore())
	return NewRelay(logging.Nop{}, bs, ps, metrics.NewRecorder())
}

// subscribe acks on a separate goroutine, since Publish blocks until every
// subscriber has acked.
func subscribe(t *testing.T, ps PubSub, topic string) <-chan []byte {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	msgs, err := ps.Subscribe(ctx, topic)
	require.NoError(t, err)

	out := make(chan []byte, 1024)
	go func() {
		for msg := range msgs {
			msg.Ack()
			out <- msg.Payload
		}
	}()
	return out
}

func nextRaw(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(5 * time.Second):
		t.Fatal("no message published")
		return nil
	}
}

func next(t *testing.T, ch <-chan []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(nextRaw(t, ch), &out))
	return out
}

func TestRelay_CreateBroadcasts(t *testing.T) {
	ps := newTestPubSub(t)
	r := newTestRelay(t, ps)
	books := subscribe(t, ps, TopicBooks)

	require.NoError(t, r.Handle(context.Background(), DestCreate, []byte(`{"title":"Dune","publicationDate":"1965-06-01"}`)))

	got := next(t, books)
	assert.Equal(t, "CREATE", got["action"])
	assert.Equal(t, true, got["success"])
	assert.Equal(t, 1.0, got["id"])
	assert.Equal(t, "1965-06-01", got["publicationDate"])
	assert.Equal(t, "Book created successfully", got["message"])
}

func TestRelay_GetPublishesToSingleTopic(t *testing.T) {
	ps := newTestPubSub(t)
	r := newTestRelay(t, ps)
	book := subscribe(t, ps, TopicBook)
	ctx := context.Background()

	require.NoError(t, r.Handle(ctx, DestCreate, []byte(`{"title":"Dune"}`)))
	require.NoError(t, r.Handle(ctx, DestGet, []byte(`{"id":1}`)))

	got := next(t, book)
	assert.Equal(t, "GET", got["action"])
	assert.Equal(t, "Dune", got["title"])

	require.NoError(t, r.Handle(ctx, DestGet, []byte(`{"id":"abc"}`)))
	got = next(t, book)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "Invalid book id", got["message"])
}

func TestRelay_DeleteThenGet(t *testing.T) {
	ps := newTestPubSub(t)
	r := newTestRelay(t, ps)
	books := subscribe(t, ps, TopicBooks)
	book := subscribe(t, ps, TopicBook)
	ctx := context.Background()

	require.NoError(t, r.Handle(ctx, DestCreate, []byte(`{"title":"Dune"}`)))
	next(t, books)

	require.NoError(t, r.Handle(ctx, DestDelete, []byte(`{"id":1}`)))
	got := next(t, books)
	assert.Equal(t, "DELETE", got["action"])
	assert.Equal(t, true, got["success"])

	require.NoError(t, r.Handle(ctx, DestDelete, []byte(`{"id":1}`)))
	got = next(t, books)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "Book not found with id: 1", got["message"])

	require.NoError(t, r.Handle(ctx, DestGet, []byte(`{"id":1}`)))
	got = next(t, book)
	assert.Equal(t, "Book not found with id: 1", got["message"])
}

func TestRelay_UpdateFailures(t *testing.T) {
	ps := newTestPubSub(t)
	r := newTestRelay(t, ps)
	books := subscribe(t, ps, TopicBooks)
	ctx := context.Background()

	require.NoError(t, r.Handle(ctx, DestUpdate, []byte(`not json`)))
	got := next(t, books)
	assert.Equal(t, "UPDATE", got["action"])
	assert.Equal(t, false, got["success"])
	assert.Contains(t, got["message"], "Error processing request: ")

	require.NoError(t, r.Handle(ctx, DestUpdate, []byte(`{"id":3,"title":"x"}`)))
	got = next(t, books)
	assert.Equal(t, "Book not found with id: 3", got["message"])

	require.NoError(t, r.Handle(ctx, DestCreate, []byte(`{"publicationDate":"2023-05"}`)))
	got = next(t, books)
	assert.Equal(t, "CREATE", got["action"])
	assert.Contains(t, got["message"], "validation error")
}

func TestRelay_GetAll(t *testing.T) {
	ps := newTestPubSub(t)
	r := newTestRelay(t, ps)
	books := subscribe(t, ps, TopicBooks)
	list := subscribe(t, ps, TopicBooksList)
	ctx := context.Background()

	require.NoError(t, r.Handle(ctx, DestCreate, []byte(`{"title":"Dune"}`)))
	next(t, books)

	require.NoError(t, r.Handle(ctx, DestGetAll, nil))

	summary := next(t, books)
	assert.Equal(t, map[string]any{"action": "GET_ALL", "success": true, "message": "Found 1 book(s)"}, summary)

	assert.JSONEq(t, `[{"id":1,"title":"Dune"}]`, string(nextRaw(t, list)))
}

func TestRelay_UnknownDestination(t *testing.T) {
	r := newTestRelay(t, newTestPubSub(t))

	err := r.Handle(context.Background(), "/app/book/rename", []byte(`{}`))

	assert.ErrorIs(t, err, common.ErrorUnknownOperation)
}

func TestRelay_NoSubscribersIsNoop(t *testing.T) {
	r := newTestRelay(t, newTestPubSub(t))

	assert.NoError(t, r.Handle(context.Background(), DestCreate, []byte(`{"title":"Dune"}`)))
}

func TestRelay_BroadcastsKeepPublishOrder(t *testing.T) {
	const n = 300
	ps := newTestPubSub(t)
	r := newTestRelay(t, ps)
	books := subscribe(t, ps, TopicBooks)
	ctx := context.Background()

	for i := 0; i < n; i++ {
		require.NoError(t, r.Handle(ctx, DestCreate, []byte(`{"title":"Dune"}`)))
	}

	for want := 1; want <= n; want++ {
		got := next(t, books)
		require.Equal(t, float64(want), got["id"], "broadcast %d out of order", want)
	}
}
