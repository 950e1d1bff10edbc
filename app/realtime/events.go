package realtime

import (
	"encoding/json"
	"fmt"

	"quill/app/models"
	"quill/app/services"

	"github.com/go-playground/validator/v10"
)

// Event names forming the closed set of channel messages.
const (
	EventJoinArticle  = "join_article"
	EventNewComment   = "new_comment"
	EventCommentAdded = "comment_added"
	EventCommentError = "comment_error"
)

var validate = validator.New()

// Envelope is the wire framing for every channel message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinArticle asks to receive events for one article's room.
type JoinArticle struct {
	ArticleID int `json:"articleId" validate:"required,gte=1"`
}

// NewComment is a fire-and-forget comment submission. The response
// arrives asynchronously on the same channel: comment_added broadcast
// to the room on success, comment_error unicast to the sender on
// failure.
type NewComment struct {
	ArticleID  int                   `json:"articleId" validate:"required,gte=1"`
	AuthorID   int                   `json:"authorId" validate:"gte=0"`
	AuthorName string                `json:"authorName" validate:"required,min=1,max=50"`
	Body       string                `json:"body" validate:"max=500"`
	Images     []models.CommentImage `json:"images" validate:"max=3"`
}

// Draft converts the payload into the service-layer draft.
func (n NewComment) Draft() services.CommentDraft {
	return services.CommentDraft{
		ArticleID:  n.ArticleID,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		Body:       n.Body,
		Images:     n.Images,
	}
}

// CommentAdded carries the finalized comment and the room's fresh
// comment count to every member.
type CommentAdded struct {
	Comment      *models.Comment `json:"comment"`
	CommentCount int             `json:"commentCount"`
}

// CommentError reports a failed submission to the sender only.
type CommentError struct {
	Message string `json:"message"`
}

// encodeEvent frames an event for the wire.
func encodeEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// decodeEnvelope parses and checks the outer framing. Unknown events
// are rejected here, before any payload reaches core logic.
func decodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed message: %w", err)
	}
	switch env.Event {
	case EventJoinArticle, EventNewComment:
		return env, nil
	default:
		return Envelope{}, fmt.Errorf("unknown event %q", env.Event)
	}
}

// decodePayload parses and validates an event payload.
func decodePayload(env Envelope, out interface{}) error {
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("malformed %s payload: %w", env.Event, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid %s payload: %w", env.Event, err)
	}
	return nil
}
