package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/chat"
	"github.com/omarKhan56/MuseBot/internal/llm"
	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/pricing"
)

// ChatHandler runs one conversational turn: it loads or creates the
// session, asks the LLM for a free-text reply, reduces the utterance
// through the booking state machine, and persists the resulting session.
// The LLM is advisory only and its failures are absorbed; the state
// machine alone decides what booking data is real.
type ChatHandler struct {
	Store  chat.Store
	LLM    *llm.Client
	Prices pricing.Table
	Now    func() time.Time // injectable for tests
}

// NewChatHandler constructs a ChatHandler.  llmClient may be disabled
// (no API key); the handler then answers with the fallback reply.
func NewChatHandler(store chat.Store, llmClient *llm.Client, prices pricing.Table) *ChatHandler {
	if store == nil {
		panic("nil store passed to NewChatHandler")
	}
	return &ChatHandler{Store: store, LLM: llmClient, Prices: prices, Now: time.Now}
}

type chatRequest struct {
	SessionID string `json:"session_id"` // empty starts a new session
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID   string     `json:"session_id"`
	Reply       string     `json:"reply"`
	Followup    string     `json:"followup,omitempty"` // synthesized state-machine message
	State       chat.State `json:"state"`
	Draft       chat.Draft `json:"draft"`
	TotalAmount int64      `json:"total_amount"`
	Handoff     bool       `json:"handoff"`
}

// Converse handles POST /v1/chat.
func (h *ChatHandler) Converse(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "message is required"})
	}

	ctx := c.Request().Context()
	now := h.Now()

	sess, err := h.Store.Get(ctx, req.SessionID)
	if err != nil {
		log.Printf("chat: session load failed: %v", err)
	}
	if sess == nil {
		sess = chat.NewSession(uuid.NewString())
	}

	history := make([]llm.Message, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply := llm.FallbackReply
	if h.LLM.Enabled() {
		if out, err := h.LLM.Complete(ctx, history, req.Message); err != nil {
			log.Printf("chat: llm completion failed: %v", err)
		} else {
			reply = out
		}
	}

	res := chat.Reduce(sess.State, sess.Draft, req.Message, now, h.Prices)

	sess.Append(model.RoleUser, req.Message, now)
	sess.Append(model.RoleAssistant, reply, now)
	if res.Reply != "" {
		sess.Append(model.RoleAssistant, res.Reply, now)
	}
	sess.State = res.State
	sess.Draft = res.Draft

	switch res.State {
	case chat.StateConfirmed:
		// The draft has handed off; the conversation is over.
		if err := h.Store.Delete(ctx, sess.ID); err != nil {
			log.Printf("chat: session delete failed: %v", err)
		}
	case chat.StateCancelled:
		// Reset so the visitor can start over in the same session.
		sess.State = chat.StateIdle
		sess.Draft = chat.Draft{}
		if err := h.Store.Save(ctx, sess); err != nil {
			log.Printf("chat: session save failed: %v", err)
		}
	default:
		if err := h.Store.Save(ctx, sess); err != nil {
			log.Printf("chat: session save failed: %v", err)
		}
	}

	total, _ := h.Prices.Total(res.Draft.Category, res.Draft.Quantity)
	return c.JSON(http.StatusOK, chatResponse{
		SessionID:   sess.ID,
		Reply:       reply,
		Followup:    res.Reply,
		State:       res.State,
		Draft:       res.Draft,
		TotalAmount: total,
		Handoff:     res.Handoff,
	})
}
