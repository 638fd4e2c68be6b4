package lavalink

import "time"

// DefaultRestTimeout bounds a REST call when the shared config does not
// set one.
const DefaultRestTimeout = 15 * time.Second

// DefaultUserAgent identifies reverb to the node when the shared config
// does not set one.
const DefaultUserAgent = "reverb"

// ClientConfig is configuration shared across every node owned by the same
// host application. The REST client reads it on every call rather than
// copying it at construction, so runtime changes take effect immediately.
type ClientConfig struct {
	UserAgent   string
	RestTimeout time.Duration
}

func (c *ClientConfig) restTimeout() time.Duration {
	if c == nil || c.RestTimeout <= 0 {
		return DefaultRestTimeout
	}
	return c.RestTimeout
}

func (c *ClientConfig) userAgent() string {
	if c == nil || c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

// ConnectionOptions describe how to reach a single node.
type ConnectionOptions struct {
	Name   string // identifier for the node, e.g. "main"
	URL    string // host[:port], no scheme
	Auth   string // node password, sent verbatim as Authorization
	Secure bool   // use https when true
}

// Node represents a remote audio-processing node. Within this slice it
// only carries identity, connection options and the shared configuration
// its REST client reads; registration and the voice websocket live with
// the host application.
type Node struct {
	options ConnectionOptions
	config  *ClientConfig
	rest    *RestClient
}

// NewNode creates a node and its REST client. No network activity occurs
// until a call is made.
func NewNode(options ConnectionOptions, config *ClientConfig) *Node {
	n := &Node{
		options: options,
		config:  config,
	}
	n.rest = NewRestClient(n)
	return n
}

// Name returns the node's identifier.
func (n *Node) Name() string {
	return n.options.Name
}

// Options returns the node's connection options.
func (n *Node) Options() ConnectionOptions {
	return n.options
}

// Rest returns the node's REST client.
func (n *Node) Rest() *RestClient {
	return n.rest
}
