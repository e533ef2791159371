package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndicatorsSetsEveryone(t *testing.T) {
	broken := &lampLog{err: errors.New("lamp stuck")}
	fine := &lampLog{}

	err := Indicators{broken, fine}.Set(TeamB, true)

	assert.ErrorIs(t, err, broken.err)
	assert.Equal(t, []bool{true}, broken.changes[TeamB])
	assert.Equal(t, []bool{true}, fine.changes[TeamB])
	assert.NoError(t, Indicators{}.Set(TeamA, false))
}
