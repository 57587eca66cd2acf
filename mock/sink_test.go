package mock_test

import (
	"testing"

	"github.com/shensd/icecold"
	"github.com/shensd/icecold/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// mock.Sink must satisfy icecold.Sink
	var _ icecold.Sink = &mock.Sink{}
}

func TestSink_Write(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFn", func(t *testing.T) {
		t.Parallel()

		var lines []string
		s := &mock.Sink{
			WriteFn: func(line string) error {
				lines = append(lines, line)
				return nil
			},
		}

		require.NoError(t, s.Write("hello"))
		require.NoError(t, s.Write("world"))

		assert.Equal(t, []string{"hello", "world"}, lines)
	})
}
