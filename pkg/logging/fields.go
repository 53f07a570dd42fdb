package logging

import "time"

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
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

// Field helpers for the framework graph domain

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func NodeName(name string) Field {
	return String("node", name)
}

func TierName(tier string) Field {
	return String("tier", tier)
}

func Author(author string) Field {
	return String("author", author)
}

func VersionID(id string) Field {
	return String("version_id", id)
}

func Violations(v []string) Field {
	return Field{Key: "violations", Value: v}
}

func Count(n int) Field {
	return Int("count", n)
}
