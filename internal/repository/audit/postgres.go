package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"orderscan/internal/domain"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresLog mirrors the canonical log into the audit_log table. Writes are
// handed off to a background goroutine through a bounded queue, so recording
// never blocks on the database; when the queue is full the entry is dropped
// from the mirror only.
type PostgresLog struct {
	db execer
	lg *zap.SugaredLogger

	queue chan domain.LogEntry
	done  chan struct{}
}

func NewPostgres(pool *pgxpool.Pool, lg *zap.SugaredLogger) *PostgresLog {
	return newPostgresLog(pool, lg)
}

func newPostgresLog(db execer, lg *zap.SugaredLogger) *PostgresLog {
	p := &PostgresLog{
		db:    db,
		lg:    lg,
		queue: make(chan domain.LogEntry, 256),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *PostgresLog) Append(e domain.LogEntry) {
	select {
	case p.queue <- e:
	default:
		p.lg.Errorf("audit mirror: queue full, dropping entry id=%s", e.ID)
	}
}

func (p *PostgresLog) run() {
	defer close(p.done)
	const q = `
INSERT INTO audit_log (id, recorded_at, message, status, details)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
`
	for e := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := p.db.Exec(ctx, q, e.ID, e.Timestamp, e.Message, string(e.Status), e.Details)
		cancel()
		if err != nil {
			p.lg.Errorf("audit mirror: insert id=%s: %v", e.ID, err)
		}
	}
}

// Close flushes queued entries and stops the background writer.
func (p *PostgresLog) Close() {
	close(p.queue)
	<-p.done
}
