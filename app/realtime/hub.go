package realtime

import (
	"context"
	"errors"
	"strings"

	"quill/app/models"
	"quill/app/services"

	"github.com/rs/zerolog"
)

// CommentPipeline is what the hub needs from the comment service:
// persist a submission and recount its room.
type CommentPipeline interface {
	CreateComment(draft services.CommentDraft) (*models.Comment, error)
	CountByArticle(articleID int) (int, error)
}

// Hub owns all room state. A single goroutine runs the loop, so room
// membership is never touched concurrently and comment_added events go
// out in exactly the order comments were persisted.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage

	// rooms maps article ID to the connections joined to it; members
	// is the reverse view used to drop a connection from every room
	// at once on disconnect.
	rooms   map[int]map[*Client]bool
	members map[*Client]map[int]bool

	comments CommentPipeline
	log      zerolog.Logger
}

type inboundMessage struct {
	client *Client
	raw    []byte
}

// NewHub creates a Hub around the given comment pipeline.
func NewHub(comments CommentPipeline, log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundMessage),
		rooms:      make(map[int]map[*Client]bool),
		members:    make(map[*Client]map[int]bool),
		comments:   comments,
		log:        log,
	}
}

// Run processes hub events until the context is cancelled. All state
// mutation happens here.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.members {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.members[client] = make(map[int]bool)
			h.log.Debug().Str("conn", client.id).Msg("connection registered")
		case client := <-h.unregister:
			h.drop(client)
		case msg := <-h.inbound:
			h.handle(msg.client, msg.raw)
		}
	}
}

// drop removes a connection and all of its room memberships atomically.
func (h *Hub) drop(client *Client) {
	joined, ok := h.members[client]
	if !ok {
		return
	}
	for articleID := range joined {
		delete(h.rooms[articleID], client)
		if len(h.rooms[articleID]) == 0 {
			delete(h.rooms, articleID)
		}
	}
	delete(h.members, client)
	close(client.send)
	h.log.Debug().Str("conn", client.id).Msg("connection dropped")
}

// handle dispatches one inbound message from a registered connection.
func (h *Hub) handle(client *Client, raw []byte) {
	if _, ok := h.members[client]; !ok {
		return
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		h.unicastError(client, "unrecognized message")
		return
	}

	switch env.Event {
	case EventJoinArticle:
		var join JoinArticle
		if err := decodePayload(env, &join); err != nil {
			h.unicastError(client, "invalid join request")
			return
		}
		h.join(client, join.ArticleID)
	case EventNewComment:
		var submission NewComment
		if err := decodePayload(env, &submission); err != nil {
			h.unicastError(client, "invalid comment submission")
			return
		}
		h.submit(client, submission)
	}
}

// join adds the connection to an article's room. Memberships
// accumulate: joining a second article does not leave the first, so a
// user with multiple tabs keeps receiving updates for earlier views.
func (h *Hub) join(client *Client, articleID int) {
	if h.rooms[articleID] == nil {
		h.rooms[articleID] = make(map[*Client]bool)
	}
	h.rooms[articleID][client] = true
	h.members[client][articleID] = true
	h.log.Debug().Str("conn", client.id).Int("article", articleID).Msg("joined room")
}

// submit runs the persist-then-broadcast pipeline for one comment.
// Any failure short-circuits to a comment_error unicast; the room
// never sees a partial result. On success every room member, the
// originator included, receives exactly one comment_added event.
func (h *Hub) submit(client *Client, submission NewComment) {
	comment, err := h.comments.CreateComment(submission.Draft())
	if err != nil {
		h.log.Warn().Err(err).Int("article", submission.ArticleID).Msg("comment submission failed")
		h.unicastError(client, submissionErrorMessage(err))
		return
	}

	count, err := h.comments.CountByArticle(comment.ArticleID)
	if err != nil {
		// The comment is persisted but the room would see a wrong
		// total. Report the failure to the sender and broadcast
		// nothing; the comment shows up on the next page fetch.
		h.log.Warn().Err(err).Int("article", comment.ArticleID).Msg("comment count failed after persist")
		h.unicastError(client, "failed to save comment")
		return
	}

	payload, err := encodeEvent(EventCommentAdded, CommentAdded{Comment: comment, CommentCount: count})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode comment_added")
		return
	}

	for member := range h.rooms[comment.ArticleID] {
		h.send(member, payload)
	}
}

// unicastError reports a failure to the originating connection only.
func (h *Hub) unicastError(client *Client, message string) {
	payload, err := encodeEvent(EventCommentError, CommentError{Message: message})
	if err != nil {
		return
	}
	h.send(client, payload)
}

// send delivers a payload to one connection. A member whose send
// buffer is full is treated as disconnected and dropped; there is no
// retry or queued redelivery.
func (h *Hub) send(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		h.drop(client)
	}
}

// submissionErrorMessage maps the service error taxonomy to the
// message surfaced on the channel.
func submissionErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrValidation):
		return "comment rejected: " + trimTaxonomy(err)
	case errors.Is(err, services.ErrNotFound):
		return "article not found"
	default:
		return "failed to save comment"
	}
}

// trimTaxonomy strips the taxonomy prefix from a wrapped error so the
// client sees only the human-readable part.
func trimTaxonomy(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
