package world

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-testutil"
)

// recordingPublisher captures per-connection frames for test assertions.
type recordingPublisher struct {
	frames []publishedFrame
}

type publishedFrame struct {
	connID string
	event  string
	data   string
}

func (p *recordingPublisher) PublishToConn(connID string, data []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.frames = append(p.frames, publishedFrame{
		connID: connID,
		event:  env.Event,
		data:   string(env.Data),
	})
	return nil
}

func (p *recordingPublisher) eventsTo(connID string) []string {
	var events []string
	for _, f := range p.frames {
		if f.connID == connID {
			events = append(events, f.event)
		}
	}
	return events
}

func TestJoinLeaveIdempotent(t *testing.T) {
	r := NewRouter(&recordingPublisher{})

	r.Join("c1", "gludin")
	r.Join("c1", "gludin")
	testutil.AssertEqual(t, "members", len(r.Members("gludin")), 1)

	r.Leave("c1", "gludin")
	r.Leave("c1", "gludin")
	testutil.AssertEqual(t, "members after leave", len(r.Members("gludin")), 0)

	// Leaving a map that was never joined must not panic or error.
	r.Leave("c9", "nowhere")
}

func TestBroadcastExcludesOrigin(t *testing.T) {
	pub := &recordingPublisher{}
	r := NewRouter(pub)

	r.Join("c1", "gludin")
	r.Join("c2", "gludin")
	r.Join("c3", "gludin")
	r.Join("c4", "ruins") // other map, must never receive

	r.BroadcastToMap(context.Background(), "gludin", "player_moved",
		map[string]any{"characterId": 7}, "c2")

	testutil.AssertEqual(t, "frames", len(pub.frames), 2)
	testutil.AssertEqual(t, "c2 frames", len(pub.eventsTo("c2")), 0)
	testutil.AssertEqual(t, "c4 frames", len(pub.eventsTo("c4")), 0)
	testutil.AssertEqual(t, "c1 event", pub.eventsTo("c1")[0], "player_moved")
}

func TestTransferMapExclusivity(t *testing.T) {
	pub := &recordingPublisher{}
	r := NewRouter(pub)

	r.Join("mover", "a")
	r.Join("a-resident", "a")
	r.Join("b-resident", "b")

	r.TransferMap(context.Background(), "mover", "a", "b",
		"player_joined", map[string]any{"characterId": 1},
		"player_left", map[string]any{"characterId": 1})

	testutil.AssertEqual(t, "in new map", r.Contains("mover", "b"), true)
	testutil.AssertEqual(t, "out of old map", r.Contains("mover", "a"), false)

	testutil.AssertEqual(t, "mover got nothing", len(pub.eventsTo("mover")), 0)
	testutil.AssertEqual(t, "old map notified", pub.eventsTo("a-resident")[0], "player_left")
	testutil.AssertEqual(t, "new map notified", pub.eventsTo("b-resident")[0], "player_joined")
}

func TestBroadcastSurvivesFailedRecipient(t *testing.T) {
	pub := &failingPublisher{failFor: "c2"}
	r := NewRouter(pub)

	r.Join("c1", "gludin")
	r.Join("c2", "gludin")
	r.Join("c3", "gludin")

	r.BroadcastToMap(context.Background(), "gludin", "player_moved", nil, "")

	testutil.AssertEqual(t, "delivered", len(pub.delivered), 2)
}

type failingPublisher struct {
	failFor   string
	delivered []string
}

func (p *failingPublisher) PublishToConn(connID string, data []byte) error {
	if connID == p.failFor {
		return context.DeadlineExceeded
	}
	p.delivered = append(p.delivered, connID)
	return nil
}
