package logger

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field lets callers build log fields without importing zap
type Field = zap.Field

func String(key, val string) Field { return zap.String(key, val) }
func Int(key string, val int) Field { return zap.Int(key, val) }
func Int64(key string, val int64) Field { return zap.Int64(key, val) }
func Bool(key string, val bool) Field { return zap.Bool(key, val) }
func Any(key string, val interface{}) Field { return zap.Any(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Strings(key string, val []string) Field { return zap.Strings(key, val) }

// Err carries an error under the "error" key
func Err(err error) Field { return zap.Error(err) }

// UUID carries a uuid as its string form
func UUID(key string, id uuid.UUID) Field { return zap.String(key, id.String()) }
