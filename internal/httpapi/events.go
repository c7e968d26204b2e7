package httpapi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 30 * time.Second
)

// events streams the caller's progress events over a websocket until
// either side closes it.
func (h *handler) events(c *gin.Context) {
	userID := currentUser(c)

	conn, err := websocket.Accept(newUpgradeWriter(c.Writer), c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		// Accept has already written the HTTP error response. Once the
		// 101 is out the client believes the handshake succeeded.
		if c.Writer.Written() {
			h.log.Error("websocket upgrade failed", "user_id", userID, "error", err)
		} else {
			h.log.Warn("websocket upgrade rejected", "user_id", userID, "error", err)
		}
		_ = c.Error(err)
		return
	}
	defer conn.CloseNow()

	sub := h.hub.Subscribe(userID)
	defer h.hub.Unsubscribe(sub)

	// Clients only listen; CloseRead handles their control frames and
	// cancels ctx once they go away.
	ctx := conn.CloseRead(c.Request.Context())

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return
			}
		case e, ok := <-sub.Events():
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := wsjson.Write(wctx, conn, e)
			cancel()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					h.log.Warn("websocket write failed", "user_id", userID, "error", err)
				}
				return
			}
		}
	}
}

// upgradeWriter adapts gin's writer for websocket.Accept. gin refuses to
// hijack a response whose header it has flushed, so the 101 goes straight
// to the underlying writer while gin only records the status, and the
// hijack itself goes through gin so it marks the response as written.
type upgradeWriter struct {
	gw  gin.ResponseWriter
	raw http.ResponseWriter
}

func newUpgradeWriter(w gin.ResponseWriter) upgradeWriter {
	raw := http.ResponseWriter(w)
	if u, ok := w.(interface{ Unwrap() http.ResponseWriter }); ok {
		raw = u.Unwrap()
	}
	return upgradeWriter{gw: w, raw: raw}
}

func (w upgradeWriter) Header() http.Header { return w.gw.Header() }

func (w upgradeWriter) Write(b []byte) (int, error) { return w.gw.Write(b) }

func (w upgradeWriter) WriteHeader(code int) {
	w.gw.WriteHeader(code)
	if code == http.StatusSwitchingProtocols {
		w.raw.WriteHeader(code)
	}
}

func (w upgradeWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if _, ok := w.raw.(http.Hijacker); !ok {
		return nil, nil, fmt.Errorf("%T does not support hijacking", w.raw)
	}
	return w.gw.Hijack()
}
