package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/crypto"
	"github.com/cbwinslow/lazylocker/pkg/logging"
	"github.com/cbwinslow/lazylocker/pkg/store"
)

// DefaultTTL is the maximum lifetime of an agent session.
const DefaultTTL = 8 * time.Hour

// HousekeepingInterval is how often the TTL watchdog checks for
// expiry.
const HousekeepingInterval = 60 * time.Second

// acceptPollInterval is how long Accept blocks before the main loop
// re-checks ShouldStop; it stands in for the non-blocking-socket
// poll described in spec.md §4.4.
const acceptPollInterval = 50 * time.Millisecond

// Serve binds socketPath, loads the store at lockerDir under key, and
// runs the agent loop until shutdown, TTL expiry, or ctx cancellation.
// It is the body of the `agent` CLI subcommand run inside the spawned
// child process.
func Serve(ctx context.Context, key []byte, lockerDir string, socketPath string, ttl time.Duration, log *logging.Logger) error {
	defer crypto.Zero(key)

	st, err := store.Load(lockerDir, key)
	if err != nil {
		return fmt.Errorf("agent: load store: %w", err)
	}

	_ = os.Remove(socketPath)
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("agent: listen on %s: %w", socketPath, err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("agent: chmod socket: %w", err)
	}
	unixListener, ok := listener.(*net.UnixListener)
	if !ok {
		listener.Close()
		return errors.New("agent: expected a unix listener")
	}
	defer func() {
		unixListener.Close()
		_ = os.Remove(socketPath)
	}()

	state := NewState(key, st, ttl)
	if log != nil {
		log.WithFields(map[string]any{"socket": socketPath, "ttl": ttl.String()}).Info("agent started")
	}

	hkCtx, cancelHK := context.WithCancel(ctx)
	defer cancelHK()
	go housekeeping(hkCtx, state)

	for {
		if state.ShouldStop() || ctx.Err() != nil {
			break
		}

		if err := unixListener.SetDeadline(time.Now().Add(acceptPollInterval)); err != nil {
			return fmt.Errorf("agent: set accept deadline: %w", err)
		}
		conn, err := unixListener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			if log != nil {
				log.WithField("error", err.Error()).Warn("agent accept error")
			}
			continue
		}

		go handleConn(conn, state, log)
	}

	if log != nil {
		log.Info("agent stopping")
	}
	return nil
}

func housekeeping(ctx context.Context, state *State) {
	ticker := time.NewTicker(HousekeepingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if state.Expired() {
				state.RequestStop()
			}
		}
	}
}

func handleConn(conn net.Conn, state *State, log *logging.Logger) {
	defer conn.Close()

	requestID := uuid.NewString()
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}

	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		writeResponse(conn, errResponse("malformed request"))
		return
	}

	resp := dispatch(state, req)
	writeResponse(conn, resp)

	if log != nil {
		log.WithFields(map[string]any{
			"request_id": requestID,
			"action":     string(req.Action),
			"status":     resp.Status,
		}).Info("agent request")
	}
}

func dispatch(state *State, req Request) Response {
	state.Mu.Lock()
	defer state.Mu.Unlock()

	if state.Expired() {
		state.RequestStop()
		return errResponse("Session expired")
	}

	switch req.Action {
	case ActionPing:
		resp, err := okResponse(PingData{
			UptimeSecs:       state.Uptime().Seconds(),
			TTLRemainingSecs: state.TTLRemaining().Seconds(),
		})
		if err != nil {
			return errResponse(err.Error())
		}
		return resp

	case ActionList:
		names := make([]string, 0, state.Store.Len())
		for _, secret := range state.Store.List() {
			names = append(names, secret.Name)
		}
		resp, err := okResponse(names)
		if err != nil {
			return errResponse(err.Error())
		}
		return resp

	case ActionGetSecrets:
		values, err := state.Store.DecryptAll(state.Key)
		if err != nil {
			return errResponse(err.Error())
		}
		resp, err := okResponse(values)
		if err != nil {
			return errResponse(err.Error())
		}
		return resp

	case ActionGetSecret:
		if req.Name == "" {
			return errResponse(core.ErrBadArgument.Error())
		}
		value, err := state.Store.DecryptOne(req.Name, state.Key)
		if err != nil {
			return errResponse(err.Error())
		}
		resp, err := okResponse(GetSecretData{Value: value})
		if err != nil {
			return errResponse(err.Error())
		}
		return resp

	case ActionShutdown:
		state.RequestStop()
		resp, err := okResponse(ShutdownData{Message: "shutting down"})
		if err != nil {
			return errResponse(err.Error())
		}
		return resp

	default:
		return errResponse(fmt.Sprintf("unknown action %q", req.Action))
	}
}

func writeResponse(conn net.Conn, resp Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		return
	}
	body = append(body, '\n')
	_, _ = conn.Write(body)
}
