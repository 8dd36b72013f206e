package usage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresSink_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	sink := NewPostgresSinkWithPool(mock, "ai_requests")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ai_requests")).
		WithArgs(pgxmock.AnyArg(), "sess-1", "question", "answer", "deepseek-chat",
			42, 0.00001, 1.5, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = sink.Append(context.Background(), &Record{
		SessionID:       "sess-1",
		PromptText:      "question",
		ResponseText:    "answer",
		Model:           "deepseek-chat",
		TokensUsed:      42,
		CostUSD:         0.00001,
		DurationSeconds: 1.5,
		Metadata:        map[string]any{"tone": "helpful"},
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSink_AppendError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	sink := NewPostgresSinkWithPool(mock, "ai_requests")

	mock.ExpectExec("INSERT INTO ai_requests").
		WillReturnError(errors.New("connection refused"))

	err = sink.Append(context.Background(), &Record{PromptText: "q"})
	assert.Error(t, err)
}

func TestPostgresSink_InitSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	sink := NewPostgresSinkWithPool(mock, "ai_requests")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS ai_requests")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, sink.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
