package effectmodel

// EffectEnum is the context key a handler is registered under.
type EffectEnum string

const (
	EffectLog EffectEnum = "effect_ive_redux_effect_enum_log"
)

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads with the same PartitionKey are handled by the same worker, in order.
type Partitionable interface {
	PartitionKey() string
}
