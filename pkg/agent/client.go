package agent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/cbwinslow/lazylocker/pkg/core"
)

// dialTimeout bounds how long a client waits to connect to the agent
// socket before giving up.
const dialTimeout = 2 * time.Second

// Client talks to a running agent over its Unix-domain socket. Each
// call opens a fresh connection, sends one request line, reads one
// response line, and closes — the protocol is request/response only,
// with no pipelining or connection reuse.
type Client struct {
	socketPath string
}

// NewClient returns a client bound to the agent socket under dir.
func NewClient(dir string) *Client {
	return &Client{socketPath: SocketPath(dir)}
}

func (c *Client) roundTrip(req Request) (Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, dialTimeout)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", core.ErrAgentUnavailable, err)
	}
	defer conn.Close()

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	body = append(body, '\n')
	if _, err := conn.Write(body); err != nil {
		return Response{}, fmt.Errorf("%w: %v", core.ErrAgentUnavailable, err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", core.ErrAgentUnavailable, err)
	}

	var resp Response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return Response{}, fmt.Errorf("agent: malformed response: %w", err)
	}
	if resp.Status != "ok" {
		return resp, fmt.Errorf("agent: %s", resp.Message)
	}
	return resp, nil
}

// Ping reports the agent's uptime and remaining session TTL.
func (c *Client) Ping() (PingData, error) {
	resp, err := c.roundTrip(Request{Action: ActionPing})
	if err != nil {
		return PingData{}, err
	}
	var data PingData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return PingData{}, err
	}
	return data, nil
}

// List returns the names of every secret held by the agent.
func (c *Client) List() ([]string, error) {
	resp, err := c.roundTrip(Request{Action: ActionList})
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(resp.Data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// GetSecret returns the decrypted value of a single named secret.
func (c *Client) GetSecret(name string) (string, error) {
	resp, err := c.roundTrip(Request{Action: ActionGetSecret, Name: name})
	if err != nil {
		return "", err
	}
	var data GetSecretData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", err
	}
	return data.Value, nil
}

// GetSecrets returns every secret's decrypted value, keyed by name.
func (c *Client) GetSecrets() (map[string]string, error) {
	resp, err := c.roundTrip(Request{Action: ActionGetSecrets})
	if err != nil {
		return nil, err
	}
	var values map[string]string
	if err := json.Unmarshal(resp.Data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// Shutdown asks the agent to stop after replying.
func (c *Client) Shutdown() error {
	_, err := c.roundTrip(Request{Action: ActionShutdown})
	return err
}
