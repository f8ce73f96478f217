package fit

import (
	"errors"
	"testing"

	"github.com/bietkhonhungvandi212/fitsim/internal/alloc/memory"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestQuickFit(t *testing.T) {
	a := QuickFit{}
	m := memory.New(a.Strategy().Tag(), []int{10})

	idx, err := Allocate(a, m, m.Issue(1))
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, util.ErrUnsupportedStrategy)

	var simErr *util.SimulationError
	assert.True(t, errors.As(err, &simErr))
	assert.Equal(t, util.ErrTypeUnsupportedStrategy, simErr.Type)

	assert.Empty(t, m.Unallocated(), "unsupported is not an unallocated request")
	assert.Empty(t, m.Logs())
}
