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

// Correlation field helpers

func Component(name string) Field {
	return String("component", name)
}

func Stage(name string) Field {
	return String("stage", name)
}

func AlertCount(n int) Field {
	return Int("alerts", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

func CliqueCount(n int) Field {
	return Int("cliques", n)
}

func CommunityID(id int) Field {
	return Int("community", id)
}

func CommunityCount(n int) Field {
	return Int("communities", n)
}

func Pattern(p string) Field {
	return String("pattern", p)
}

func Certainty(c float64) Field {
	return Float64("certainty", c)
}

func Threshold(t float64) Field {
	return Float64("threshold", t)
}

func CliqueSize(k int) Field {
	return Int("k", k)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
