package pool

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("hello"))
	n, err := bb.Write([]byte(" world"))

	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte("hello world"), bb.Bytes())
	assert.Equal(t, 11, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 16, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("Sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(BodyBufferDefaultSize)
		bb.Grow(100)
		assert.Equal(t, BodyBufferDefaultSize, cap(bb.B))
	})

	t.Run("Small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("12345678"))
		bb.Grow(1)
		assert.GreaterOrEqual(t, cap(bb.B), 8+BodyBufferDefaultSize)
		assert.Equal(t, []byte("12345678"), bb.B, "data is preserved")
	})

	t.Run("Huge request", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("12345678"))
		bb.Grow(BodyBufferDefaultSize * 10)
		assert.GreaterOrEqual(t, cap(bb.B), 8+BodyBufferDefaultSize*10)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("test data"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())

	_, err = bb.WriteTo(failingWriter{})
	require.Error(t, err)
}

func TestByteBufferPool(t *testing.T) {
	t.Run("Reset on put", func(t *testing.T) {
		bb := GetBodyBuffer()
		bb.MustWrite([]byte("data"))
		PutBodyBuffer(bb)

		bb2 := GetBodyBuffer()
		assert.Equal(t, 0, bb2.Len())
		PutBodyBuffer(bb2)
	})

	t.Run("Nil put", func(t *testing.T) {
		assert.NotPanics(t, func() { PutBodyBuffer(nil) })
	})

	t.Run("Oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		bb := p.Get()
		bb.Grow(64)
		p.Put(bb)
		assert.Equal(t, 0, bb.Len())
		assert.Greater(t, cap(bb.B), 16)
	})

	t.Run("Concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					bb := GetBodyBuffer()
					bb.MustWrite([]byte("x"))
					PutBodyBuffer(bb)
				}
			}()
		}
		wg.Wait()
	})
}
