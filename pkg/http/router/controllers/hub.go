package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// User. one websocket client, each text message is a route request answered with one message.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// readRequest. nil request for control frames, those are answered in place.
func (u *User) readRequest() (*routeRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &routeRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		// drop the rest of the frame so the next read starts at a frame header
		_, _ = io.Copy(io.Discard, r)
		return nil, err
	}
	return req, nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// ComputeRoute. reads one request & writes its result. a returned error means the connection is done.
func (u *User) ComputeRoute() error {
	req, err := u.readRequest()
	if err != nil {
		if isDecodeError(err) {
			return u.write(envelope{"error": newErrorBody(http.StatusBadRequest, err)})
		}
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateRequest(req); err != nil {
		return u.write(envelope{"error": newErrorBody(http.StatusBadRequest, err)})
	}

	summary, err := u.hub.routingService.ComputeRoute(req.toParams())
	if err != nil {
		return u.write(envelope{"error": newErrorBody(statusOf(err), err)})
	}

	return u.write(envelope{"data": NewRouteResponse(summary, req.Format)})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// Hub. registry of connected websocket users.
type Hub struct {
	mu             sync.RWMutex
	seq            uint
	ns             map[uint]*User
	routingService RoutingService
}

func NewHub(routingService RoutingService) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		routingService: routingService,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	user.conn.Close()
}

func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ns)
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, 0, len(h.ns))
	for _, user := range h.ns {
		users = append(users, user)
	}
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}
