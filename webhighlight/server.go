// Package webhighlight streams highlight.HighlightEvent lists to a
// browser over a websocket connection, one JSON message per request.
package webhighlight

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/spanhighlight/highlight"
)

// Highlighter produces a well-formed event stream for a named document.
// Callers wire in whatever producer (syntax, chromaspan) and langconfig
// lookup resolved that document's language.
type Highlighter interface {
	Highlight(document string) ([]highlight.HighlightEvent, []byte, error)
}

// Server upgrades incoming connections and serves highlight requests
// over them as newline-delimited JSON.
type Server struct {
	highlighter Highlighter
	upgrader    websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*wsClient
}

type wsClient struct {
	id   string
	conn *websocket.Conn
}

// NewServer constructs a Server backed by highlighter.
func NewServer(highlighter Highlighter) *Server {
	return &Server{
		highlighter: highlighter,
		upgrader:    websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096},
		clients:     map[string]*wsClient{},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/ws" {
		s.handleWebSocket(w, r)
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	client := &wsClient{id: ulid.Make().String(), conn: conn}
	s.mu.Lock()
	s.clients[client.id] = client
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, client.id)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		var req rpcRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		s.handleRequest(client, req)
	}
}

type rpcRequest struct {
	ID       int    `json:"id"`
	Document string `json:"document"`
}

type rpcResponse struct {
	ID     int                        `json:"id"`
	Source string                     `json:"source,omitempty"`
	Events []highlight.HighlightEvent `json:"events,omitempty"`
	Error  *rpcError                  `json:"error,omitempty"`
}

type rpcError struct {
	Message string `json:"message"`
}

func (s *Server) handleRequest(client *wsClient, req rpcRequest) {
	events, source, err := s.highlighter.Highlight(req.Document)
	if err != nil {
		client.conn.WriteJSON(rpcResponse{ID: req.ID, Error: &rpcError{Message: err.Error()}})
		return
	}
	client.conn.WriteJSON(rpcResponse{ID: req.ID, Source: string(source), Events: events})
}

type pushMessage struct {
	Document string                     `json:"document"`
	Events   []highlight.HighlightEvent `json:"events"`
}

// Broadcast pushes a document's updated event stream to every connected
// client outside the request/response cycle, for callers that re-highlight
// on file change rather than on an explicit client request.
func (s *Server) Broadcast(document string, events []highlight.HighlightEvent) error {
	data, err := marshalEvents(document, events)
	if err != nil {
		return err
	}

	s.mu.Lock()
	clients := make([]*wsClient, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("broadcast to client %s: %v", c.id, err)
		}
	}
	return nil
}

func marshalEvents(document string, events []highlight.HighlightEvent) ([]byte, error) {
	return json.Marshal(pushMessage{Document: document, Events: events})
}
