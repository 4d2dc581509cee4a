package tracing

import (
	"context"
	"errors"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracingFile(t *testing.T) {
	fname := path.Join(t.TempDir(), "span_test.txt")
	if !assert.Nil(t, Init("comets", "0.0.1", fname)) {
		return
	}

	ctx, span := StartSpan(context.Background(), "comets.load_model", KindInternal)
	span.WithAttributes(map[string]string{"url": "mem://localhost/toy.cmd"}).WithCount("issues", 2)
	current, ok := SpanFromContext(ctx)
	assert.True(t, ok)
	assert.NotNil(t, current)
	EndSpan(span, errors.New("CorruptLine"))

	data, err := os.ReadFile(fname)
	assert.Nil(t, err)
	assert.Contains(t, string(data), "comets.load_model")
}

func TestSpan_Nil(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(nil)
	EndSpan(span, nil)
	_, ok := SpanFromContext(context.Background())
	assert.False(t, ok)
}
