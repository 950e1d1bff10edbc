package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"quill/app/models"
	"quill/app/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fakePipeline persists comments in memory with the same validation
// outcomes as the comment service.
type fakePipeline struct {
	nextID     int
	counts     map[int]int
	failCreate bool
	failCount  bool
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{nextID: 1, counts: make(map[int]int)}
}

func (f *fakePipeline) CreateComment(draft services.CommentDraft) (*models.Comment, error) {
	if f.failCreate {
		return nil, fmt.Errorf("%w: store unavailable", services.ErrPersistence)
	}
	if strings.TrimSpace(draft.Body) == "" && len(draft.Images) == 0 {
		return nil, fmt.Errorf("%w: comment must have a body or at least one image", services.ErrValidation)
	}

	comment := &models.Comment{
		ID:         f.nextID,
		ArticleID:  draft.ArticleID,
		AuthorID:   draft.AuthorID,
		AuthorName: draft.AuthorName,
		Body:       draft.Body,
		Images:     draft.Images,
		CreatedAt:  time.Now(),
	}
	f.nextID++
	f.counts[draft.ArticleID]++
	return comment, nil
}

func (f *fakePipeline) CountByArticle(articleID int) (int, error) {
	if f.failCount {
		return 0, fmt.Errorf("%w: store unavailable", services.ErrPersistence)
	}
	return f.counts[articleID], nil
}

// Test harness: the hub loop runs for real, clients are plain send
// channels with no socket behind them.

func startHub(t *testing.T) (*Hub, *fakePipeline) {
	t.Helper()
	pipeline := newFakePipeline()
	hub := NewHub(pipeline, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub, pipeline
}

func connect(t *testing.T, hub *Hub) *Client {
	t.Helper()
	client := &Client{id: uuid.NewString(), hub: hub, send: make(chan []byte, 8)}
	hub.register <- client
	return client
}

func joinRoom(hub *Hub, client *Client, articleID int) {
	raw, _ := json.Marshal(map[string]interface{}{
		"event": EventJoinArticle,
		"data":  map[string]int{"articleId": articleID},
	})
	hub.inbound <- inboundMessage{client: client, raw: raw}
}

func submitComment(hub *Hub, client *Client, articleID int, body string) {
	raw, _ := json.Marshal(map[string]interface{}{
		"event": EventNewComment,
		"data": map[string]interface{}{
			"articleId":  articleID,
			"authorId":   1,
			"authorName": "Tester",
			"body":       body,
		},
	})
	hub.inbound <- inboundMessage{client: client, raw: raw}
}

func recvEvent(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case raw, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Envelope{}
	}
}

func recvCommentAdded(t *testing.T, client *Client) CommentAdded {
	t.Helper()
	env := recvEvent(t, client)
	require.Equal(t, EventCommentAdded, env.Event)
	var added CommentAdded
	require.NoError(t, json.Unmarshal(env.Data, &added))
	return added
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case raw, ok := <-client.send:
		if ok {
			t.Fatalf("unexpected event: %s", raw)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitBroadcastsToRoom(t *testing.T) {
	hub, _ := startHub(t)
	x := connect(t, hub)
	y := connect(t, hub)
	joinRoom(hub, x, 1)
	joinRoom(hub, y, 1)

	submitComment(hub, x, 1, "hello room")

	gotX := recvCommentAdded(t, x)
	gotY := recvCommentAdded(t, y)

	assert.Equal(t, gotX.Comment.ID, gotY.Comment.ID)
	assert.Equal(t, 1, gotX.CommentCount)
	assert.Equal(t, 1, gotY.CommentCount)
	assert.Equal(t, "hello room", gotX.Comment.Body)

	// Exactly one event each.
	assertNoEvent(t, x)
	assertNoEvent(t, y)
}

func TestRoomIsolation(t *testing.T) {
	hub, _ := startHub(t)
	roomOne := connect(t, hub)
	roomTwo := connect(t, hub)
	joinRoom(hub, roomOne, 1)
	joinRoom(hub, roomTwo, 2)

	submitComment(hub, roomOne, 1, "only for room one")

	got := recvCommentAdded(t, roomOne)
	assert.Equal(t, 1, got.Comment.ArticleID)
	assertNoEvent(t, roomTwo)
}

func TestMultiRoomListening(t *testing.T) {
	hub, _ := startHub(t)
	listener := connect(t, hub)
	joinRoom(hub, listener, 1)
	joinRoom(hub, listener, 2)

	submitComment(hub, listener, 1, "first room")
	submitComment(hub, listener, 2, "second room")

	first := recvCommentAdded(t, listener)
	second := recvCommentAdded(t, listener)
	assert.Equal(t, 1, first.Comment.ArticleID)
	assert.Equal(t, 2, second.Comment.ArticleID)
}

func TestValidationErrorIsUnicast(t *testing.T) {
	hub, pipeline := startHub(t)
	sender := connect(t, hub)
	other := connect(t, hub)
	joinRoom(hub, sender, 1)
	joinRoom(hub, other, 1)

	submitComment(hub, sender, 1, "   ")

	env := recvEvent(t, sender)
	assert.Equal(t, EventCommentError, env.Event)
	var cerr CommentError
	require.NoError(t, json.Unmarshal(env.Data, &cerr))
	assert.NotEmpty(t, cerr.Message)

	assertNoEvent(t, other)
	assert.Equal(t, 0, pipeline.counts[1])
}

func TestPersistenceErrorMeansNoBroadcast(t *testing.T) {
	hub, pipeline := startHub(t)
	sender := connect(t, hub)
	other := connect(t, hub)
	joinRoom(hub, sender, 1)
	joinRoom(hub, other, 1)

	pipeline.failCreate = true
	submitComment(hub, sender, 1, "doomed")

	env := recvEvent(t, sender)
	assert.Equal(t, EventCommentError, env.Event)
	assertNoEvent(t, other)
}

func TestCountErrorMeansNoBroadcast(t *testing.T) {
	hub, pipeline := startHub(t)
	sender := connect(t, hub)
	other := connect(t, hub)
	joinRoom(hub, sender, 1)
	joinRoom(hub, other, 1)

	pipeline.failCount = true
	submitComment(hub, sender, 1, "persisted but uncounted")

	// The comment was stored; the room must not see a made-up count.
	env := recvEvent(t, sender)
	assert.Equal(t, EventCommentError, env.Event)
	assertNoEvent(t, other)
	assert.Equal(t, 1, pipeline.counts[1])
}

func TestUnknownEventRejected(t *testing.T) {
	hub, _ := startHub(t)
	client := connect(t, hub)

	hub.inbound <- inboundMessage{client: client, raw: []byte(`{"event":"shutdown","data":{}}`)}

	env := recvEvent(t, client)
	assert.Equal(t, EventCommentError, env.Event)
}

func TestOrderingWithinRoom(t *testing.T) {
	hub, _ := startHub(t)
	listener := connect(t, hub)
	sender := connect(t, hub)
	joinRoom(hub, listener, 1)
	joinRoom(hub, sender, 1)

	submitComment(hub, sender, 1, "one")
	submitComment(hub, sender, 1, "two")
	submitComment(hub, sender, 1, "three")

	var lastID, lastCount int
	for i := 0; i < 3; i++ {
		got := recvCommentAdded(t, listener)
		assert.Greater(t, got.Comment.ID, lastID)
		assert.Greater(t, got.CommentCount, lastCount)
		lastID = got.Comment.ID
		lastCount = got.CommentCount
	}
}

func TestDisconnectDropsAllMemberships(t *testing.T) {
	hub, _ := startHub(t)
	leaver := connect(t, hub)
	stayer := connect(t, hub)
	joinRoom(hub, leaver, 1)
	joinRoom(hub, leaver, 2)
	joinRoom(hub, stayer, 1)

	hub.unregister <- leaver

	submitComment(hub, stayer, 1, "after the leave")
	recvCommentAdded(t, stayer)

	// The leaver's channel is closed and received nothing.
	_, ok := <-leaver.send
	assert.False(t, ok)
}

func TestSlowMemberIsDropped(t *testing.T) {
	hub, _ := startHub(t)
	slow := &Client{id: "slow", hub: hub, send: make(chan []byte)}
	hub.register <- slow
	sender := connect(t, hub)
	joinRoom(hub, slow, 1)
	joinRoom(hub, sender, 1)

	// Nobody reads slow.send, so the unbuffered channel is full and
	// the broadcast drops the member instead of blocking the hub.
	submitComment(hub, sender, 1, "too fast for you")
	recvCommentAdded(t, sender)

	_, ok := <-slow.send
	assert.False(t, ok)
}
