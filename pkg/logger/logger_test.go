package logger

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { Log.SetLevel(logrus.InfoLevel) })

	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Setup("not-a-level")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestFromContext(t *testing.T) {
	entry := FromContext(context.Background())
	_, ok := entry.Data["request_id"]
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "host/abc-000001")
	entry = FromContext(ctx)
	assert.Equal(t, "host/abc-000001", entry.Data["request_id"])
}
