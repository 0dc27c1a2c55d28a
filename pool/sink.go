// File: pool/sink.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Adapters between the pool's line-oriented diagnostic sink and
// structured loggers.

package pool

import (
	"bytes"
	"io"

	"go.uber.org/zap"
)

// zapSink forwards each diagnostic line to a zap logger at warn level.
type zapSink struct {
	logger *zap.Logger
}

// ZapSink adapts a zap logger into a pool error sink:
//
//	p := pool.NewLockFree[Msg](64, pool.WithErrSink[Msg](pool.ZapSink(logger)))
func ZapSink(logger *zap.Logger) io.Writer {
	return &zapSink{logger: logger}
}

func (s *zapSink) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		if len(line) > 0 {
			s.logger.Warn(string(line))
		}
	}
	return len(p), nil
}
