package webhighlight

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/odvcencio/spanhighlight/highlight"
)

type fakeHighlighter struct {
	events []highlight.HighlightEvent
	source []byte
	err    error
}

func (f fakeHighlighter) Highlight(document string) ([]highlight.HighlightEvent, []byte, error) {
	return f.events, f.source, f.err
}

func TestServeHTTPRoundTrip(t *testing.T) {
	want := []highlight.HighlightEvent{
		highlight.StartEvent(1), highlight.SourceEvent(0, 5), highlight.EndEvent(),
	}
	srv := NewServer(fakeHighlighter{events: want, source: []byte("hello")})
	ts := httptest.NewServer(http.HandlerFunc(srv.ServeHTTP))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(rpcRequest{ID: 1, Document: "doc.go"}); err != nil {
		t.Fatalf("writing request: %v", err)
	}
	var resp rpcResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if resp.ID != 1 || resp.Source != "hello" || len(resp.Events) != len(want) {
		t.Fatalf("got %+v", resp)
	}
}

func TestBroadcastReachesConnectedClients(t *testing.T) {
	srv := NewServer(fakeHighlighter{})
	ts := httptest.NewServer(http.HandlerFunc(srv.ServeHTTP))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	// Round-trip a request first so the test doesn't race the server's
	// client registration.
	if err := conn.WriteJSON(rpcRequest{ID: 1, Document: "doc.go"}); err != nil {
		t.Fatalf("writing request: %v", err)
	}
	var resp rpcResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}

	pushed := []highlight.HighlightEvent{highlight.StartEvent(2), highlight.SourceEvent(0, 1), highlight.EndEvent()}
	if err := srv.Broadcast("doc.go", pushed); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	var push pushMessage
	if err := conn.ReadJSON(&push); err != nil {
		t.Fatalf("reading push: %v", err)
	}
	if push.Document != "doc.go" || len(push.Events) != len(pushed) {
		t.Fatalf("got %+v", push)
	}
}
