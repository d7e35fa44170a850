package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusWithoutChecks(t *testing.T) {
	assert.Equal(t, Report{OK: true}, NewService().Status(context.Background()))

	var s *Service
	assert.True(t, s.Status(context.Background()).OK)
}

func TestStatusReportsFailingDependency(t *testing.T) {
	s := NewService()
	s.Register("database", func(context.Context) error { return nil })
	s.Register("redis", func(context.Context) error { return errors.New("connection refused") })
	s.Register("ignored", nil)

	rep := s.Status(context.Background())
	assert.False(t, rep.OK)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "connection refused"}, rep.Checks)
}

func TestChecksShareDeadline(t *testing.T) {
	s := NewService()
	s.Register("db", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})
	assert.True(t, s.Status(context.Background()).OK)
}
