package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"deloconnect/internal/logging"
	"deloconnect/internal/types"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// FeedState is the live-feed connection state. The feed is an explicit
// state machine rather than a fire-and-forget socket so the UI can show a
// stale indicator while the thread is not being updated.
//
//	disconnected -> connecting -> connected
//	                    ^             |
//	                    |             v
//	                  backoff <---- (read error / close)
type FeedState int

const (
	FeedDisconnected FeedState = iota
	FeedConnecting
	FeedConnected
	FeedBackoff
)

func (s FeedState) String() string {
	switch s {
	case FeedConnecting:
		return "connecting"
	case FeedConnected:
		return "connected"
	case FeedBackoff:
		return "backoff"
	default:
		return "disconnected"
	}
}

// feedEvent is the inbound wire shape on the live feed.
type feedEvent struct {
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Feed maintains one WebSocket connection per active chat with bounded
// exponential reconnect. Well-formed "new_message" events are delivered on
// Events; state transitions on States. Both channels close when Run returns.
type Feed struct {
	url    string
	token  string
	dialer *websocket.Dialer

	events chan types.Message
	states chan FeedState

	mu    sync.Mutex
	state FeedState

	// Tunables, overridden in tests.
	initialInterval time.Duration
	maxInterval     time.Duration
}

// FeedURL builds the live-feed endpoint for a chat.
func FeedURL(wsBase, chatID string) string {
	return strings.TrimRight(wsBase, "/") + "/llm/chat/ws/llm/" + chatID
}

// NewFeed creates a feed for the given endpoint. Call Run to connect.
func NewFeed(url, token string) *Feed {
	return &Feed{
		url:             url,
		token:           token,
		dialer:          websocket.DefaultDialer,
		events:          make(chan types.Message, 64),
		states:          make(chan FeedState, 16),
		initialInterval: time.Second,
		maxInterval:     30 * time.Second,
	}
}

// Events delivers normalized live messages.
func (f *Feed) Events() <-chan types.Message { return f.events }

// States delivers connection state transitions.
func (f *Feed) States() <-chan FeedState { return f.states }

// State returns the current connection state.
func (f *Feed) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Feed) setState(s FeedState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
	select {
	case f.states <- s:
	default:
		// A slow consumer loses intermediate transitions, never messages.
	}
}

// Run connects and pumps events until ctx is cancelled. Lost connections
// re-dial with exponential backoff capped at maxInterval; the backoff resets
// after every successful connect. Run owns both channels and closes them on
// return.
func (f *Feed) Run(ctx context.Context) {
	defer close(f.events)
	defer close(f.states)
	defer f.markDisconnected()

	log := logging.Get(logging.CategoryFeed)

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = f.initialInterval
	retry.MaxInterval = f.maxInterval
	retry.MaxElapsedTime = 0 // retry until the chat view goes away

	for {
		if ctx.Err() != nil {
			return
		}
		f.setState(FeedConnecting)

		header := http.Header{}
		if f.token != "" {
			header.Set("Authorization", "Bearer "+f.token)
		}
		conn, _, err := f.dialer.DialContext(ctx, f.url, header)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := retry.NextBackOff()
			log.Warn("dial %s failed: %v (retrying in %s)", f.url, err, wait)
			f.setState(FeedBackoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		log.Info("connected to %s", f.url)
		retry.Reset()
		f.setState(FeedConnected)

		err = f.readPump(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}

		wait := retry.NextBackOff()
		log.Warn("connection lost: %v (reconnecting in %s)", err, wait)
		f.setState(FeedBackoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// readPump reads events until the connection drops or ctx is cancelled.
func (f *Feed) readPump(ctx context.Context, conn *websocket.Conn) error {
	log := logging.Get(logging.CategoryFeed)

	// Unblock ReadMessage when the context goes away mid-read.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev feedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Warn("dropping malformed feed event: %v", err)
			continue
		}
		if ev.Type != "new_message" {
			log.Debug("ignoring feed event type %q", ev.Type)
			continue
		}
		msg := types.Message{
			Sender:    types.Sender(ev.Sender),
			Text:      ev.Message,
			Timestamp: ev.Timestamp,
		}
		select {
		case f.events <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *Feed) markDisconnected() {
	f.mu.Lock()
	f.state = FeedDisconnected
	f.mu.Unlock()
}
