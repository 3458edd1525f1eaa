package application

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/civic-reports/config"
)

// IDGenerator assigns report ids at creation time.
type IDGenerator interface {
	NewID(now time.Time) string
}

// MillisIDGenerator uses the creation instant in Unix milliseconds. Two
// reports created within the same millisecond share an id and the later
// write replaces the earlier one.
type MillisIDGenerator struct{}

func (MillisIDGenerator) NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// UUIDGenerator issues random v4 ids and never collides in practice.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(time.Time) string { return uuid.NewString() }

func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", config.IDStrategyMillis:
		return MillisIDGenerator{}, nil
	case config.IDStrategyUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
