package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

// Algorithm names the AlgorithmSpec a log line concerns (spec.md §4.7's
// ProcedureExecutor is the one place that logs an algorithm run).
func Algorithm(name string) Field {
	return String("algorithm", name)
}

// GraphName names the catalog entry a log line concerns.
func GraphName(name string) Field {
	return String("graph", name)
}

// Mode names the ExecutionMode (Stream/Stats/Write) a log line concerns.
func Mode(mode string) Field {
	return String("mode", mode)
}

// Superstep names the Pregel BSP superstep a log line concerns (spec.md §4.5).
func Superstep(n int) Field {
	return Int("superstep", n)
}

// PropertyKey names the node/relationship property a log line concerns.
func PropertyKey(key string) Field {
	return String("property_key", key)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
