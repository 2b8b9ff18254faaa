// Package formrpc serves form sessions over JSON-RPC 2.0.
//
// Clients call form/state to get the states of all widgets, and form/edit,
// form/toggle, form/select and form/click to interact with them. After each
// interaction, and after the form is refreshed for other reasons, the server
// sends a form/update notification with the states of the changed widgets.
package formrpc

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
	"github.com/linkki-framework/linkki-sub003/pkg/session"
	"github.com/linkki-framework/linkki-sub003/pkg/widget"
)

var logger = logutil.GetLogger("[formrpc] ")

// Methods and notifications.
const (
	MethodState  = "form/state"
	MethodEdit   = "form/edit"
	MethodToggle = "form/toggle"
	MethodSelect = "form/select"
	MethodClick  = "form/click"
	NotifyUpdate = "form/update"
)

// Error codes in addition to the ones defined by JSON-RPC.
const (
	CodeNoWidget    = -32001
	CodeNotEditable = -32002
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// WidgetParams are the params of form/toggle and form/click.
type WidgetParams struct {
	ID string `json:"id"`
}

// EditParams are the params of form/edit.
type EditParams struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SelectParams are the params of form/select.
type SelectParams struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// Widgets is the result of form/state and the params of form/update.
type Widgets struct {
	Widgets []widget.State `json:"widgets"`
}

type server struct {
	s *session.Session

	mu   sync.Mutex
	conn *jsonrpc2.Conn
}

// Serve serves the session over the stream. It returns when the connection
// is closed by the peer or the context is done.
func Serve(ctx context.Context, stream jsonrpc2.ObjectStream, s *session.Session) error {
	srv := &server{s: s}
	s.OnUpdate(srv.notify)
	conn := jsonrpc2.NewConn(ctx, stream, srv.handler())
	srv.setConn(conn)
	logger.Printf("session %d: connected", s.ID())
	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
	srv.setConn(nil)
	logger.Printf("session %d: disconnected", s.ID())
	return ctx.Err()
}

// StdioStream returns a stream that reads from in and writes to out, with
// messages framed by Content-Length headers.
func StdioStream(in, out *os.File) jsonrpc2.ObjectStream {
	return jsonrpc2.NewBufferedStream(transport{in, out}, jsonrpc2.VSCodeObjectCodec{})
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}

func (srv *server) setConn(c *jsonrpc2.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.conn = c
}

func (srv *server) notify(states []widget.State) {
	srv.mu.Lock()
	conn := srv.conn
	srv.mu.Unlock()
	if conn == nil {
		return
	}
	err := conn.Notify(context.Background(), NotifyUpdate, Widgets{states})
	if err != nil {
		logger.Printf("session %d: notify: %v", srv.s.ID(), err)
	}
}

func (srv *server) handler() jsonrpc2.Handler {
	route := routingHandler(map[string]method{
		MethodState:  srv.state,
		MethodEdit:   srv.edit,
		MethodToggle: srv.toggle,
		MethodSelect: srv.choose,
		MethodClick:  srv.click,
	})
	// Requests may arrive before NewConn returns to Serve.
	return handlerFunc(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
		srv.setConn(conn)
		route.Handle(ctx, conn, req)
	})
}

type handlerFunc func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request)

func (f handlerFunc) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	f(ctx, conn, req)
}

type method func(context.Context, json.RawMessage) (any, error)

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		result, err := fn(ctx, params)
		if err != nil {
			return nil, rpcError(err)
		}
		return result, nil
	})
}

func rpcError(err error) error {
	var rpcErr *jsonrpc2.Error
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.Is(err, session.ErrNoWidget), errors.Is(err, session.ErrUnsupported),
		errors.Is(err, widget.ErrNoSuchItem):
		return &jsonrpc2.Error{Code: CodeNoWidget, Message: err.Error()}
	case errors.Is(err, widget.ErrNotEditable):
		return &jsonrpc2.Error{Code: CodeNotEditable, Message: err.Error()}
	default:
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
}

// Handler implementations. These are all called synchronously.

func (srv *server) state(context.Context, json.RawMessage) (any, error) {
	return Widgets{srv.s.States()}, nil
}

func (srv *server) edit(_ context.Context, raw json.RawMessage) (any, error) {
	var params EditParams
	if err := unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return nil, srv.s.Edit(params.ID, params.Text)
}

func (srv *server) toggle(_ context.Context, raw json.RawMessage) (any, error) {
	var params WidgetParams
	if err := unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return nil, srv.s.Toggle(params.ID)
}

func (srv *server) choose(_ context.Context, raw json.RawMessage) (any, error) {
	var params SelectParams
	if err := unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return nil, srv.s.Select(params.ID, params.Index)
}

func (srv *server) click(_ context.Context, raw json.RawMessage) (any, error) {
	var params WidgetParams
	if err := unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return nil, srv.s.Click(params.ID)
}

func unmarshal(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" || json.Unmarshal(raw, v) != nil {
		return errInvalidParams
	}
	return nil
}
