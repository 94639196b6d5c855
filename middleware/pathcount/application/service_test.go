package application

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"middleware-counter/middleware/pathcount/domain"
)

type fakeStore struct {
	counts map[domain.Key]domain.Count
	err    error
}

func (s *fakeStore) IncrementAndGet(_ context.Context, key domain.Key) (domain.Count, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.counts == nil {
		s.counts = make(map[domain.Key]domain.Count)
	}
	s.counts[key]++
	return s.counts[key], nil
}

type fakeStats struct {
	events []domain.CallEvent
	err    error
}

func (s *fakeStats) Record(_ context.Context, ev domain.CallEvent) error {
	s.events = append(s.events, ev)
	return s.err
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestService_Observe_IncrementsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{}
	svc := &Service{Store: store, Logger: zerolog.New(&buf)}

	require.NoError(t, svc.Observe(context.Background(), Call{Key: "foo"}))
	require.NoError(t, svc.Observe(context.Background(), Call{Key: "foo"}))
	assert.Equal(t, domain.Count(2), store.counts["foo"])

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, `Called path "foo" 2 times.`, lines[1]["message"])
	assert.Equal(t, "foo", lines[1]["key"])
	assert.EqualValues(t, 2, lines[1]["count"])
}

func TestService_Observe_EmptyKeyIsValid(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{}
	svc := &Service{Store: store, Logger: zerolog.New(&buf)}

	err := svc.Observe(context.Background(), Call{Key: ""})
	require.NoError(t, err)
	assert.Equal(t, domain.Count(1), store.counts[""])
	assert.Contains(t, buf.String(), `Called path \"\" 1 times.`)
}

func TestService_Observe_PropagatesStoreFault(t *testing.T) {
	stats := &fakeStats{}
	svc := &Service{Store: &fakeStore{err: domain.ErrStorePoisoned}, Stats: stats, Logger: zerolog.Nop()}

	err := svc.Observe(context.Background(), Call{Key: "foo"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreFault))
	assert.True(t, errors.Is(err, domain.ErrStorePoisoned))
	assert.Empty(t, stats.events, "no stats for a failed increment")
}

func TestService_Observe_NoStoreIsFault(t *testing.T) {
	svc := &Service{Logger: zerolog.Nop()}

	err := svc.Observe(context.Background(), Call{Key: "foo"})
	assert.True(t, errors.Is(err, domain.ErrStoreFault))
}

func TestService_Observe_RecordsStats(t *testing.T) {
	stats := &fakeStats{}
	svc := &Service{Store: &fakeStore{}, Stats: stats, Logger: zerolog.Nop()}

	err := svc.Observe(context.Background(), Call{Key: "foo", Method: "GET", Path: "/foo/bar", RequestID: "rid-1"})
	require.NoError(t, err)

	require.Len(t, stats.events, 1)
	ev := stats.events[0]
	assert.Equal(t, domain.Key("foo"), ev.Key)
	assert.Equal(t, domain.Count(1), ev.Count)
	assert.Equal(t, "GET", ev.Method)
	assert.Equal(t, "/foo/bar", ev.Path)
	assert.Equal(t, "rid-1", ev.RequestID)
	assert.False(t, ev.At.IsZero())
}

func TestService_Observe_StatsFailureIsBestEffort(t *testing.T) {
	var buf bytes.Buffer
	stats := &fakeStats{err: errors.New("redis down")}
	svc := &Service{
		Store:     &fakeStore{},
		Stats:     stats,
		Logger:    zerolog.New(&buf),
		StatsWarn: NewStatsWarn(time.Hour),
	}

	for i := 0; i < 3; i++ {
		err := svc.Observe(context.Background(), Call{Key: "foo"})
		require.NoError(t, err)
	}

	assert.Len(t, stats.events, 3)
	assert.Equal(t, 1, strings.Count(buf.String(), "stats record failed"), "warnings are throttled")
}

func TestService_Observe_UsesContextLogger(t *testing.T) {
	var base, reqBuf bytes.Buffer
	svc := &Service{Store: &fakeStore{}, Logger: zerolog.New(&base)}

	reqLogger := zerolog.New(&reqBuf).With().Str("request_id", "abc").Logger()
	ctx := reqLogger.WithContext(context.Background())

	err := svc.Observe(ctx, Call{Key: "foo"})
	require.NoError(t, err)

	assert.Empty(t, base.String())
	lines := logLines(t, &reqBuf)
	require.Len(t, lines, 1)
	assert.Equal(t, "abc", lines[0]["request_id"])
}
