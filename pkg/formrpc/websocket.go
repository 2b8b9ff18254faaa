package formrpc

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	jsonrpc2websocket "github.com/sourcegraph/jsonrpc2/websocket"

	"github.com/linkki-framework/linkki-sub003/pkg/session"
)

// WebsocketHandler returns a handler that serves each websocket connection
// with a session of a new form. Sessions are part of the hub while their
// connection is open.
func WebsocketHandler(ctx context.Context, hub *session.Hub, newForm func() (session.Form, error)) http.Handler {
	upgrader := &websocket.Upgrader{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := newForm()
		if err != nil {
			logger.Printf("create form: %v", err)
			http.Error(w, "cannot create form", http.StatusInternalServerError)
			return
		}
		wc, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// The upgrader has already replied.
			logger.Printf("websocket upgrade: %v", err)
			return
		}
		s := session.New(f)
		hub.Add(s)
		defer hub.Remove(s)
		Serve(ctx, jsonrpc2websocket.NewObjectStream(wc), s)
	})
}
