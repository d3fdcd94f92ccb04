package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-flexile/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if err := ctx.Err(); err != nil {
		return kafkago.Message{}, err
	}
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakeGenerator struct {
	calls [][2]time.Time
	err   error
	// failures makes only the first n calls return err
	failures int
	// cancelAfter cancels the consumer once that many calls were made
	cancelAfter int
	cancel      context.CancelFunc
}

func (g *fakeGenerator) GenerateAndStore(ctx context.Context, start, end time.Time) (string, error) {
	g.calls = append(g.calls, [2]time.Time{start, end})
	if g.cancelAfter > 0 && len(g.calls) >= g.cancelAfter {
		g.cancel()
	}
	if g.err != nil && (g.failures == 0 || len(g.calls) <= g.failures) {
		return "", g.err
	}
	return start.Format("2006-01"), nil
}

func run(t *testing.T, generator *fakeGenerator, values ...string) *fakeReader {
	t.Helper()
	defer func(prev time.Duration) { retryInterval = prev }(retryInterval)
	retryInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	generator.cancel = cancel
	reader := &fakeReader{cancel: cancel}
	for i, v := range values {
		reader.messages = append(reader.messages, kafkago.Message{Offset: int64(i), Value: []byte(v)})
	}
	ConsumeFinancialReportRequested(ctx, reader, generator, zap.NewNop())
	return reader
}

const (
	juneRequest = `{"event_type":"financial_report_requested","start_date":"2024-06-01","end_date":"2024-06-30","requested_by":"scheduler"}`
	julyRequest = `{"event_type":"financial_report_requested","start_date":"2024-07-01","end_date":"2024-07-31","requested_by":"scheduler"}`
)

func TestConsumeFinancialReportRequested(t *testing.T) {
	t.Run("generates and commits", func(t *testing.T) {
		generator := &fakeGenerator{}
		reader := run(t, generator, juneRequest)

		assert.Len(t, generator.calls, 1)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), generator.calls[0][0])
		assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), generator.calls[0][1])
		assert.Len(t, reader.committed, 1)
	})

	t.Run("undecodable payload is skipped", func(t *testing.T) {
		generator := &fakeGenerator{}
		reader := run(t, generator, "not json", `{"start_date":"yesterday","end_date":"2024-06-30"}`)

		assert.Empty(t, generator.calls)
		assert.Len(t, reader.committed, 2)
	})

	t.Run("invalid range is committed", func(t *testing.T) {
		generator := &fakeGenerator{err: apperror.New(apperror.CodeInvalidInput, "bad range", 400)}
		reader := run(t, generator, juneRequest)

		assert.Len(t, generator.calls, 1)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("infrastructure failure is retried before later messages", func(t *testing.T) {
		generator := &fakeGenerator{err: errors.New("redis down"), failures: 2}
		reader := run(t, generator, juneRequest, julyRequest)

		june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		july := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		assert.Len(t, generator.calls, 4)
		assert.Equal(t, []time.Time{june, june, june, july}, []time.Time{
			generator.calls[0][0], generator.calls[1][0], generator.calls[2][0], generator.calls[3][0],
		})

		assert.Len(t, reader.committed, 2)
		assert.Equal(t, int64(0), reader.committed[0].Offset)
		assert.Equal(t, int64(1), reader.committed[1].Offset)
	})

	t.Run("shutdown during retries leaves the message uncommitted", func(t *testing.T) {
		generator := &fakeGenerator{err: errors.New("redis down"), cancelAfter: 3}
		reader := run(t, generator, juneRequest, julyRequest)

		assert.Len(t, generator.calls, 3)
		for _, call := range generator.calls {
			assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), call[0])
		}
		assert.Empty(t, reader.committed)
	})
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 15*time.Second, retryDelay(1))
	assert.Equal(t, 45*time.Second, retryDelay(3))
	assert.Equal(t, 150*time.Second, retryDelay(10))
	assert.Equal(t, 150*time.Second, retryDelay(50))
}
