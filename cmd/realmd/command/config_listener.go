package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-realm/internal/listener"
	"github.com/pixil98/go-realm/internal/session"
)

type ListenerConfig struct {
	Port uint16 `json:"port"`
	Path string `json:"path,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(handler listener.EventHandler, bus listener.Bus, registry *session.Registry, presence listener.Lifecycle) *listener.WebsocketListener {
	path := cl.Path
	if path == "" {
		path = "/ws"
	}
	return listener.NewWebsocketListener(cl.Port, path, handler, bus, registry, presence)
}
