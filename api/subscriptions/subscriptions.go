// Copyright (c) 2025 The GildCoin developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/GildCoinDev/gild-crypto/api/restutil"
	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/ledger"
	"github.com/GildCoinDev/gild-crypto/log"
	"github.com/GildCoinDev/gild-crypto/metrics"
)

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// send pings to the peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveWebsocketCount = metrics.LazyLoadGaugeVec("api_active_websocket_count", []string{"subject"})
)

// Subscriptions pushes committed events to websocket clients. A client
// resumes after a disconnect by passing the sequence number of the last
// message it saw.
type Subscriptions struct {
	ledger   *ledger.Ledger
	cache    *messageCache
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(ledger *ledger.Ledger, allowedOrigins []string, cacheSize uint32) *Subscriptions {
	return &Subscriptions{
		ledger: ledger,
		cache:  newMessageCache(cacheSize),
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, r *http.Request) error {
	s.wg.Add(1)
	defer s.wg.Done()

	query := r.URL.Query()
	var filter EventFilter
	filter.Name = query.Get("name")
	if v := query.Get("account"); v != "" {
		addr, err := gild.ParseAddress(v)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}

	var position uint64
	if v := query.Get("pos"); v != "" {
		pos, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return restutil.BadRequest(errors.WithMessage(err, "pos"))
		}
		position = pos
	} else {
		// no cursor means live tail only
		pos, err := s.ledger.EventDB().NewestEventSeq(r.Context())
		if err != nil {
			return err
		}
		position = pos
	}

	reader := newEventReader(s.ledger.EventDB(), s.cache, position, &filter)

	conn, closed, err := s.setupConn(w, r)
	if err != nil {
		// the upgrader has already replied to the client
		logger.Debug("upgrade to websocket failed", "err", err)
		return nil
	}
	defer s.closeConn(conn)

	metricActiveWebsocketCount().AddWithLabel(1, map[string]string{"subject": "events"})
	defer metricActiveWebsocketCount().AddWithLabel(-1, map[string]string{"subject": "events"})

	err = s.pipe(r, conn, reader, closed)
	if err != nil {
		logger.Debug("subscription ended", "err", err)
	}
	return nil
}

// setupConn upgrades the request and starts the read pump. The read
// pump consumes client frames to keep pong handling alive and closes
// the returned channel when the peer goes away.
func (s *Subscriptions) setupConn(w http.ResponseWriter, r *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, nil, err
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(1024)
		conn.SetReadDeadline(time.Now().Add(pongWait)) //#nosec G104
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait)) //#nosec G104
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn) {
	conn.SetWriteDeadline(time.Now().Add(writeWait)) //#nosec G104
	// a close frame lets the well behaved client shut down cleanly; the
	// errors here carry no information beyond "peer already gone"
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //#nosec G104
	conn.Close()                                                                                              //#nosec G104
}

// pipe drains the reader into the connection, then sleeps until the
// ledger commits again. Pings keep idle connections from timing out.
func (s *Subscriptions) pipe(r *http.Request, conn *websocket.Conn, reader *eventReader, closed chan struct{}) error {
	ticker := s.ledger.NewTicker()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		msgs, hasMore, err := reader.Read(r.Context())
		if err != nil {
			return errors.WithMessage(err, "read events")
		}
		for _, msg := range msgs {
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //#nosec G104
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return errors.WithMessage(err, "write")
			}
		}
		if hasMore {
			continue
		}
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-r.Context().Done():
			return r.Context().Err()
		case <-ticker.C():
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //#nosec G104
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return errors.WithMessage(err, "ping")
			}
		}
	}
}

// Close stops accepting work and waits for in-flight connections to
// wind down.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("subscriptions_events").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSubscribeEvents))
}
