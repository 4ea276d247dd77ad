package orders

import (
	"context"
	"fmt"
	"time"

	"cardapio/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	minReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay = 30 * time.Second
	unlistenTimeout   = 2 * time.Second
)

// Listener forwards Postgres order notifications to a Publisher.
type Listener struct {
	pool   *pgxpool.Pool
	pub    Publisher
	logger *zap.Logger
}

func NewListener(pool *pgxpool.Pool, pub Publisher, logger *zap.Logger) *Listener {
	return &Listener{pool: pool, pub: pub, logger: logger}
}

// Run listens until ctx is done, reconnecting with capped exponential
// backoff when the connection fails.
func (l *Listener) Run(ctx context.Context) {
	delay := minReconnectDelay

	for {
		connected, err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			delay = minReconnectDelay
		}

		l.logger.Warn("order listener disconnected",
			zap.Error(err),
			zap.Duration("retry_in", delay),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = nextDelay(delay)
	}
}

// listen holds one connection for as long as it works. connected reports
// whether LISTEN succeeded.
func (l *Listener) listen(ctx context.Context) (connected bool, err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{db.OrdersChannel}.Sanitize()); err != nil {
		return false, fmt.Errorf("listen %s: %w", db.OrdersChannel, err)
	}
	// The connection returns to the pool; stop receiving on it.
	defer unlisten(conn, unlistenTimeout)

	l.logger.Info("listening for order changes", zap.String("channel", db.OrdersChannel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return true, err
		}

		ev, err := DecodeEvent(n.Payload)
		if err != nil {
			l.logger.Warn("ignoring order notification", zap.String("payload", n.Payload), zap.Error(err))
			continue
		}
		l.pub.Publish(ev)
	}
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// unlisten runs on a fresh bounded context: the listen context is usually
// already cancelled and a dead connection must not stall the reconnect.
func unlisten(conn execer, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, _ = conn.Exec(ctx, "UNLISTEN *")
}

func nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}
