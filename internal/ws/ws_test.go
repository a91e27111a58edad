package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestEventBuffer_Since(t *testing.T) {
	eb := NewEventBuffer(3, time.Hour)
	for i := uint64(1); i <= 5; i++ {
		eb.Append(&Event{ID: i, Type: "scene.transition", Time: time.Now()})
	}

	if eb.Len() != 3 {
		t.Fatalf("len = %d, want 3", eb.Len())
	}
	if eb.OldestID() != 3 {
		t.Errorf("oldest = %d, want 3", eb.OldestID())
	}

	got := eb.Since(3)
	if len(got) != 2 || got[0].ID != 4 || got[1].ID != 5 {
		t.Errorf("Since(3) = %+v", got)
	}
	if eb.Since(5) != nil {
		t.Error("Since(last) should be nil")
	}
}

func TestEventBuffer_EvictsExpired(t *testing.T) {
	eb := NewEventBuffer(10, time.Minute)
	eb.Append(&Event{ID: 1, Time: time.Now().Add(-2 * time.Minute)})
	eb.Append(&Event{ID: 2, Time: time.Now()})

	if eb.OldestID() != 2 {
		t.Errorf("oldest = %d, want 2", eb.OldestID())
	}
}

func TestEventBuffer_WrapsInOrder(t *testing.T) {
	eb := NewEventBuffer(4, time.Hour)
	for i := uint64(1); i <= 10; i++ {
		eb.Append(&Event{ID: i, Time: time.Now()})
	}

	got := eb.Since(0)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i, e := range got {
		if e.ID != uint64(7+i) {
			t.Errorf("got[%d].ID = %d, want %d", i, e.ID, 7+i)
		}
	}
}

func TestEventBuffer_ExpiresLazily(t *testing.T) {
	now := time.Unix(1000, 0)
	eb := NewEventBuffer(5, time.Minute)
	eb.now = func() time.Time { return now }

	eb.Append(&Event{ID: 1, Time: now})
	eb.Append(&Event{ID: 2, Time: now.Add(30 * time.Second)})

	now = now.Add(75 * time.Second)
	if eb.OldestID() != 2 {
		t.Errorf("oldest = %d, want 2", eb.OldestID())
	}
	if eb.Len() != 2 {
		t.Errorf("len = %d, expired events stay until overwritten", eb.Len())
	}

	now = now.Add(time.Hour)
	if eb.OldestID() != 0 || eb.Since(0) != nil {
		t.Error("all events should be expired")
	}
}

func TestEventSequence(t *testing.T) {
	seq := NewEventSequence()
	if seq.Last() != 0 {
		t.Fatalf("Last() = %d before any event", seq.Last())
	}
	if seq.Next() != 1 || seq.Next() != 2 || seq.Last() != 2 {
		t.Error("sequence is not monotonic from 1")
	}
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn)
		hub.Register(client)
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}))
	t.Cleanup(srv.Close)

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.CloseNow() }) //nolint:errcheck
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return evt
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_PublishReachesClient(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	hub.Publish("scene.reset", map[string]any{"generation": 2})

	evt := readEvent(t, conn)
	if evt.Type != "scene.reset" {
		t.Errorf("type = %q", evt.Type)
	}
	if evt.ID != 1 {
		t.Errorf("id = %d, want 1", evt.ID)
	}
	if !strings.Contains(string(evt.Data), `"generation":2`) {
		t.Errorf("data = %s", evt.Data)
	}
}

func TestHub_SubscribeReplays(t *testing.T) {
	hub, srv := startHub(t)

	hub.Publish("scene.built", map[string]int{"nodes": 3})
	hub.Publish("scene.reset", map[string]int{"generation": 2})
	hub.Publish("route.state", map[string]string{"state": "idle"})
	if hub.LastEventID() != 3 {
		t.Fatalf("LastEventID() = %d", hub.LastEventID())
	}

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	sub, _ := json.Marshal(ClientMsg{Type: MsgSubscribe, LastEventID: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, sub); err != nil {
		t.Fatalf("write: %v", err)
	}

	first := readEvent(t, conn)
	second := readEvent(t, conn)
	if first.ID != 2 || second.ID != 3 {
		t.Errorf("replayed ids = %d, %d; want 2, 3", first.ID, second.ID)
	}
}

func TestHub_Shutdown(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	go hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"shutdown"`) {
		t.Errorf("got %s, want shutdown frame", data)
	}
}

type fakeInteractor struct {
	entered chan string
	left    chan string
}

func (f *fakeInteractor) HoverEnter(id string) error {
	if id == "Atlantis" {
		return errors.New("node not found")
	}
	f.entered <- id

	return nil
}

func (f *fakeInteractor) HoverLeave(id string) error {
	f.left <- id

	return nil
}

func writeMsg(t *testing.T, conn *websocket.Conn, msg ClientMsg) {
	t.Helper()

	data, _ := json.Marshal(msg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readReply(t *testing.T, conn *websocket.Conn) ReplyMsg {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var r ReplyMsg
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return r
}

func TestHub_HoverMessages(t *testing.T) {
	hub, srv := startHub(t)
	fi := &fakeInteractor{entered: make(chan string, 1), left: make(chan string, 1)}
	hub.Attach(fi)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	writeMsg(t, conn, ClientMsg{Type: MsgHover, NodeID: "Lagos"})
	writeMsg(t, conn, ClientMsg{Type: MsgUnhover, NodeID: "Lagos"})

	for _, ch := range []chan string{fi.entered, fi.left} {
		select {
		case id := <-ch:
			if id != "Lagos" {
				t.Errorf("id = %q, want Lagos", id)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("interaction not applied")
		}
	}
}

func TestHub_InteractionErrorsGoToSender(t *testing.T) {
	hub, srv := startHub(t)
	hub.Attach(&fakeInteractor{entered: make(chan string, 1), left: make(chan string, 1)})

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	writeMsg(t, conn, ClientMsg{Type: MsgHover, NodeID: "Atlantis"})
	if r := readReply(t, conn); r.Type != "error" || r.Message != "node not found" {
		t.Errorf("reply = %+v", r)
	}

	writeMsg(t, conn, ClientMsg{Type: "zoom"})
	if r := readReply(t, conn); r.Type != "error" || !strings.Contains(r.Message, "zoom") {
		t.Errorf("reply = %+v", r)
	}
}

func TestHub_HoverWithoutInteractor(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	writeMsg(t, conn, ClientMsg{Type: MsgHover, NodeID: "Lagos"})
	if r := readReply(t, conn); r.Message != ErrNoInteractor.Error() {
		t.Errorf("reply = %+v", r)
	}
}

func TestClient_DispatchAfterClose(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Publish("scene.built", map[string]int{"nodes": 3})

	c := &Client{
		ID:   "closed",
		hub:  hub,
		send: make(chan []byte, 4),
		log:  testLogger().WithField("client_id", "closed"),
	}
	c.closeSend()
	c.closeSend()

	for _, msg := range []string{
		`{"type":"hover","node_id":"Nowhere"}`,
		`{"type":"unhover","node_id":"Lagos"}`,
		`{"type":"subscribe","last_event_id":0}`,
		`not json`,
	} {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("dispatch(%s) after close panicked: %v", msg, r)
				}
			}()
			c.dispatch([]byte(msg))
		}()
	}

	if c.enqueue([]byte("x")) {
		t.Error("enqueue succeeded on a closed client")
	}
}

func TestHub_ConcurrentPublishKeepsOrder(t *testing.T) {
	hub := NewHub(testLogger())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				hub.Publish("scene.transition", map[string]string{"target": "node:Lagos"})
			}
		}()
	}
	wg.Wait()

	events := hub.buffer.Since(0)
	if len(events) != 400 {
		t.Fatalf("buffered %d events, want 400", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].ID <= events[i-1].ID {
			t.Fatalf("events[%d].ID = %d after %d", i, events[i].ID, events[i-1].ID)
		}
	}
	if hub.buffer.OldestID() != 1 {
		t.Errorf("oldest = %d, want 1", hub.buffer.OldestID())
	}
}
