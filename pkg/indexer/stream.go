package indexer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rishi95122/helix-core/pkg/bus"
)

const (
	writeChanCapacity = 100
	reconnectMinDelay = time.Second
	reconnectMaxDelay = 30 * time.Second
)

// Stream maintains the websocket feed and posts decoded messages onto the
// bus router, so all book mutation still happens on the router goroutine.
// On reconnect every active subscription is replayed, and the first snapshot
// after resubscribe resolves any gap via the sequence comparison downstream.
type Stream struct {
	url    string
	router *bus.Router
	logger *zap.Logger
	dialer *websocket.Dialer

	writeChan chan streamRequest

	mu            sync.Mutex
	subscriptions map[string]struct{}
}

func NewStream(url string, router *bus.Router, logger *zap.Logger) *Stream {
	return &Stream{
		url:           url,
		router:        router,
		logger:        logger,
		dialer:        websocket.DefaultDialer,
		writeChan:     make(chan streamRequest, writeChanCapacity),
		subscriptions: make(map[string]struct{}),
	}
}

// SubscribeOrderbook registers interest in a market's book. Safe to call
// before Run; the subscription is sent once a connection exists.
func (s *Stream) SubscribeOrderbook(marketID string) {
	s.mu.Lock()
	s.subscriptions[marketID] = struct{}{}
	s.mu.Unlock()

	s.enqueue(streamRequest{Type: requestSubscribe, Channel: channelOrderbookUpdate, MarketID: marketID})
}

func (s *Stream) Unsubscribe(marketID string) {
	s.mu.Lock()
	delete(s.subscriptions, marketID)
	s.mu.Unlock()

	s.enqueue(streamRequest{Type: requestUnsubscribe, Channel: channelOrderbookUpdate, MarketID: marketID})
}

func (s *Stream) enqueue(req streamRequest) {
	select {
	case s.writeChan <- req:
	default:
		s.logger.Warn("stream write queue full, dropping request",
			zap.String("type", req.Type),
			zap.String("market_id", req.MarketID))
	}
}

// Run dials and pumps until ctx is cancelled, reconnecting with exponential
// backoff on failure.
func (s *Stream) Run(ctx context.Context) {
	delay := reconnectMinDelay
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			s.logger.Warn("stream dial failed", zap.Error(err), zap.Duration("retry_in", delay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, reconnectMaxDelay)
			continue
		}
		delay = reconnectMinDelay

		s.resubscribe()
		s.pump(ctx, conn)
		_ = conn.Close()
	}
}

func (s *Stream) resubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for marketID := range s.subscriptions {
		s.enqueue(streamRequest{Type: requestSubscribe, Channel: channelOrderbookUpdate, MarketID: marketID})
	}
}

// pump runs the write loop inline and the read loop in a goroutine, returning
// when either side fails or ctx is cancelled.
func (s *Stream) pump(ctx context.Context, conn *websocket.Conn) {
	readDone := make(chan struct{})

	go func() {
		defer close(readDone)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Warn("cannot read data", zap.Error(err))
				}
				return
			}

			var msg streamMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				s.logger.Warn("unmarshal failed", zap.ByteString("raw", message), zap.Error(err))
				continue
			}
			s.post(msg)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-readDone:
			return
		case req := <-s.writeChan:
			data, err := json.Marshal(req)
			if err != nil {
				s.logger.Warn("failed to marshal request", zap.Error(err))
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Warn("failed to write to connection", zap.Error(err))
				return
			}
		}
	}
}

func (s *Stream) post(msg streamMessage) {
	switch msg.Channel {
	case channelOrderbookUpdate:
		updates := toUpdates(msg)
		if len(updates) == 0 {
			return
		}
		if err := s.router.Post(bus.OrderbookUpdateEvent, updates); err != nil {
			s.logger.Warn("unable to post orderbook updates", zap.Error(err),
				zap.String("market_id", msg.MarketID))
		}
	case channelOrderbookSnapshot:
		if msg.Orderbook == nil {
			s.logger.Warn("snapshot frame without orderbook", zap.String("market_id", msg.MarketID))
			return
		}
		snapshot := toSnapshot(msg.MarketID, *msg.Orderbook)
		if err := s.router.Post(bus.OrderbookSnapshotEvent, snapshot); err != nil {
			s.logger.Warn("unable to post orderbook snapshot", zap.Error(err),
				zap.String("market_id", msg.MarketID))
		}
	default:
		s.logger.Debug("ignoring unknown channel", zap.String("channel", msg.Channel))
	}
}
