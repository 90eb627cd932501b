package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"epichart/internal/charts"
)

const watchWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// watchHub fans props changes out to open /watch connections.
// Each subscriber gets a one-slot channel; missed signals coalesce.
type watchHub struct {
	mu     sync.Mutex
	subs   map[chan struct{}]struct{}
	closed bool
	active sync.WaitGroup
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[chan struct{}]struct{})}
}

// Add subscribes a watcher. The returned release must be called once the
// watcher is done; Close waits for it. After Close the channel comes back closed.
func (h *watchHub) Add() (chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.active.Add(1)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.Remove(ch)
			h.active.Done()
		})
	}
}

func (h *watchHub) Remove(ch chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *watchHub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close ends every subscription, refuses new ones and blocks until every
// released watcher has returned
func (h *watchHub) Close() {
	h.mu.Lock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()

	h.active.Wait()
}

func (h *watchHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// HandleWatch streams the derived view over a websocket: once on connect,
// then again after every props change. ?area= pins the area for the connection.
func (s *Server) HandleWatch(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("area")

	// Released after the connection is closed, so Close sees the going-away frame sent
	updates, release := s.watchers.Add()
	defer release()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		s.requestLog(r).Warn("Websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	log := s.requestLog(r)
	log.Info("Watcher connected", map[string]interface{}{"area": area, "watchers": s.watchers.Count()})

	// Incoming messages are ignored; a read error means the client went away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		props := s.Props()
		if area != "" {
			props.Area = area
		}

		var msg interface{}
		view, err := charts.Derive(props)
		if err != nil {
			msg = map[string]string{"error": err.Error()}
		} else {
			msg = view
		}

		conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn("Watcher write failed", map[string]interface{}{"error": err.Error()})
			return
		}

		select {
		case _, ok := <-updates:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(time.Second))
				return
			}
		case <-gone:
			log.Info("Watcher disconnected")
			return
		}
	}
}
