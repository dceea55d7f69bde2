package messaging

import "fmt"

// Bus is the publishing half of the message server. The listener delivers
// bus messages to the matching websocket.
type Bus interface {
	Publish(subject string, data []byte) error
}

// ConnPublisher addresses messages to individual connections. Each live
// connection holds a subscription on its own subject; publishing to a
// connection that has gone away is a silent no-op at the bus level.
type ConnPublisher struct {
	bus Bus
}

func NewConnPublisher(bus Bus) *ConnPublisher {
	return &ConnPublisher{bus: bus}
}

func (p *ConnPublisher) PublishToConn(connID string, data []byte) error {
	return p.bus.Publish(ConnSubject(connID), data)
}

// ConnSubject returns the bus subject carrying traffic for one connection.
func ConnSubject(connID string) string {
	return fmt.Sprintf("conn.%s", connID)
}
