package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifyCoin_AboveFloor(t *testing.T) {
	user := &User{CoinRaw: 500}

	err := user.ModifyCoin(-300)

	assert.NoError(t, err)
	assert.Equal(t, 200, user.CoinRaw)
	assert.Equal(t, 2.0, user.CoinNum())
}

func TestModifyCoin_ExactFloor(t *testing.T) {
	user := &User{CoinRaw: 500}

	err := user.ModifyCoin(-400)

	assert.NoError(t, err, "Landing exactly on the floor is allowed")
	assert.Equal(t, CoinFloor, user.CoinRaw)
}

func TestModifyCoin_BelowFloorRejected(t *testing.T) {
	user := &User{CoinRaw: 500}

	err := user.ModifyCoin(-401)

	assert.ErrorIs(t, err, ErrCoinFloor)
	assert.Equal(t, 500, user.CoinRaw, "A rejected adjustment must not mutate the balance")
}

func TestModifyCoin_Credit(t *testing.T) {
	user := &User{CoinRaw: CoinFloor}

	err := user.ModifyCoin(250)

	assert.NoError(t, err)
	assert.Equal(t, 350, user.CoinRaw)
	assert.Equal(t, 3.5, user.CoinNum())
}
