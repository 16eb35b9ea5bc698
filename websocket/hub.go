package websocket

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/college_review/models"
)

const (
	MessageReviews = "reviews"
	MessageStats   = "stats"
)

// Client is a live connection. *websocket.Conn satisfies it.
type Client interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	// sendBuffer is how many messages a client may fall behind before it is
	// dropped.
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

// deadliner is implemented by connections that support write deadlines.
type deadliner interface {
	SetWriteDeadline(t time.Time) error
}

// peer is a registered client and the queue its writer drains.
type peer struct {
	client Client
	send   chan *Message
}

// Hub fans the live review list and college stats out to every connected
// client. New clients get the latest snapshots straight away. Each client is
// written to from its own goroutine; one that cannot keep up is dropped.
type Hub struct {
	register   chan Client
	unregister chan Client
	done       chan struct{}

	clients map[Client]*peer
	reviews *Message
	stats   *Message
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan Client),
		unregister: make(chan Client),
		done:       make(chan struct{}),
		clients:    make(map[Client]*peer),
	}
}

func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
	}
}

func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run owns the client set until ctx is done, then closes every client.
// Either feed may close early; the hub keeps serving the last snapshot.
func (h *Hub) Run(ctx context.Context, reviews <-chan []models.Review, stats <-chan []models.CollegeStats) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.drop(c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			p := &peer{client: c, send: make(chan *Message, sendBuffer)}
			h.clients[c] = p
			go h.write(p)
			log.Printf("Live client registered (%d connected)", len(h.clients))
			for _, msg := range []*Message{h.reviews, h.stats} {
				if msg != nil {
					h.send(p, msg)
				}
			}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				log.Printf("Live client unregistered (%d connected)", len(h.clients))
			}
		case list, ok := <-reviews:
			if !ok {
				reviews = nil
				continue
			}
			h.reviews = &Message{Type: MessageReviews, Data: list}
			h.broadcast(h.reviews)
		case list, ok := <-stats:
			if !ok {
				stats = nil
				continue
			}
			h.stats = &Message{Type: MessageStats, Data: list}
			h.broadcast(h.stats)
		}
	}
}

func (h *Hub) broadcast(msg *Message) {
	for _, p := range h.clients {
		h.send(p, msg)
	}
}

// send queues msg without blocking and drops the client when its queue is
// full.
func (h *Hub) send(p *peer, msg *Message) {
	select {
	case p.send <- msg:
	default:
		log.Println("⚠️ Live client too slow, dropping it")
		h.drop(p.client)
	}
}

// drop forgets the client and closes it, which also unblocks a pending write.
func (h *Hub) drop(c Client) {
	p, ok := h.clients[c]
	if !ok {
		return
	}
	delete(h.clients, c)
	close(p.send)
	c.Close()
}

// write drains the peer's queue. On a failed write the client is closed and
// the hub is asked to forget it.
func (h *Hub) write(p *peer) {
	for msg := range p.send {
		if d, ok := p.client.(deadliner); ok {
			d.SetWriteDeadline(time.Now().Add(writeWait))
		}
		if err := p.client.WriteJSON(msg); err != nil {
			log.Printf("Error sending %s to live client: %v", msg.Type, err)
			p.client.Close()
			h.Unregister(p.client)
			return
		}
	}
}
