// Package command implements the add and show commands over the event
// store. The command set is closed: each kind maps to one handler
// method, and every outcome is translated into a single user-facing
// string so the chat layer and the CLI behave identically.
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"remindd/internal/digest"
	"remindd/internal/event"
)

// Kind identifies one of the known commands.
type Kind int

const (
	// KindAdd inserts a new event into the store.
	KindAdd Kind = iota
	// KindShow summarizes upcoming events on demand.
	KindShow
)

// Request is a parsed command. Title and DateText are only meaningful
// for KindAdd.
type Request struct {
	Kind     Kind
	Title    string
	DateText string
}

// Result is what the user gets back: a message, and for show, the
// payload the caller renders (as an embed or as text).
type Result struct {
	Content string
	Payload *digest.Payload
}

// User-facing messages.
const (
	MsgCreated      = "Created!"
	MsgInvalidTitle = "Invalid argument: 'title'"
	MsgInvalidDate  = "Failed to parse date; please enter an ISO 8601-formatted date (YYYY-MM-DD)"
	MsgReadFailed   = "Failed to read events"
	MsgWriteFailed  = "Failed to write events to file"
	MsgNoUpcoming   = "No upcoming events."

	// ShowContent frames the payload in a show response.
	ShowContent = "Upcoming events are following:"
)

// Handler executes commands against the store.
type Handler struct {
	store   *event.Store
	now     func() time.Time
	baseLog *zap.Logger
	log     *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(store *event.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:   store,
		now:     time.Now,
		baseLog: logger,
		log:     logger.Named("command"),
	}
}

// Handle dispatches a request to the matching command.
func (h *Handler) Handle(req Request) Result {
	switch req.Kind {
	case KindAdd:
		return Result{Content: h.Add(req.Title, req.DateText)}
	case KindShow:
		return h.Show()
	default:
		return Result{Content: "Unknown command"}
	}
}

// Add inserts a titled, dated event and reports the outcome.
func (h *Handler) Add(title, dateText string) string {
	if strings.TrimSpace(title) == "" {
		return MsgInvalidTitle
	}

	_, err := h.store.Add(title, dateText)
	switch {
	case err == nil:
		return MsgCreated
	case errors.Is(err, event.ErrInvalidDate):
		return MsgInvalidDate
	case errors.Is(err, event.ErrNotFound):
		return h.notFoundMessage()
	case errors.Is(err, event.ErrWrite):
		h.log.Error("add failed", zap.Error(err))
		return MsgWriteFailed
	default:
		h.log.Error("add failed", zap.Error(err))
		return MsgReadFailed
	}
}

// Show builds the upcoming-events summary from current store state.
func (h *Handler) Show() Result {
	events, err := h.store.Read()
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return Result{Content: h.notFoundMessage()}
		}
		h.log.Error("show failed", zap.Error(err))
		return Result{Content: MsgReadFailed}
	}

	payload := digest.Build(events, event.DateOf(h.now()), h.baseLog)
	if len(payload.Fields) == 0 {
		return Result{Content: MsgNoUpcoming}
	}
	return Result{Content: ShowContent, Payload: &payload}
}

func (h *Handler) notFoundMessage() string {
	path := h.store.Path()
	return fmt.Sprintf("`%s` is not found. Try `cp events.sample.toml %s`", path, path)
}
