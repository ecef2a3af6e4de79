package ws

import (
	"sync"
	"testing"
)

type fakeConn struct {
	id      string
	user    string
	session string

	mu  sync.Mutex
	got []Message
}

func (f *fakeConn) Send(msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, msg)
	return nil
}

func (f *fakeConn) Close() error      { return nil }
func (f *fakeConn) ID() string        { return f.id }
func (f *fakeConn) UserID() string    { return f.user }
func (f *fakeConn) SessionID() string { return f.session }

func (f *fakeConn) received() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.got...)
}

func TestBroadcast_SkipsSender(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{id: "1", user: "A", session: "s1"}
	b := &fakeConn{id: "2", user: "B", session: "s1"}
	c := &fakeConn{id: "3", user: "C", session: "s1"}
	hub.Add(a)
	hub.Add(b)
	hub.Add(c)

	hub.Broadcast("s1", Message{Type: TypeOffer}, a)

	if len(a.received()) != 0 {
		t.Fatalf("sender received its own message: %v", a.received())
	}
	if len(b.received()) != 1 || len(c.received()) != 1 {
		t.Fatalf("other members should receive exactly one message: b=%d c=%d",
			len(b.received()), len(c.received()))
	}
}

func TestBroadcast_IsolatedPerSession(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{id: "1", user: "A", session: "s1"}
	b := &fakeConn{id: "2", user: "B", session: "s2"}
	hub.Add(a)
	hub.Add(b)

	hub.Broadcast("s1", Message{Type: TypeCallEnded}, nil)

	if len(b.received()) != 0 {
		t.Fatalf("message leaked to another session: %v", b.received())
	}
	if len(a.received()) != 1 {
		t.Fatalf("expected one message in s1, got %d", len(a.received()))
	}
}

func TestRemove_Idempotent(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{id: "1", user: "A", session: "s1"}
	hub.Add(a)

	if !hub.Remove(a) {
		t.Fatal("first Remove should report membership")
	}
	if hub.Remove(a) {
		t.Fatal("second Remove should be a no-op")
	}

	hub.Broadcast("s1", Message{Type: TypeOffer}, nil)
	if len(a.received()) != 0 {
		t.Fatalf("removed connection still receives: %v", a.received())
	}
}

func TestRemove_UnknownConn(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{id: "1", user: "A", session: "s1"}

	if hub.Remove(a) {
		t.Fatal("Remove of never-added conn should report false")
	}
}
