package slot

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/GildCoinDev/gild-crypto/gild"
)

func TestConfigVariable(t *testing.T) {
	config := NewConfigVariable("name", 10)

	value := config.Get()
	assert.Equal(t, uint32(10), value)

	name := config.Name()
	assert.Equal(t, "name", name)

	pos := config.Slot()
	assert.Equal(t, gild.BytesToBytes32([]byte("name")), pos)

	_, ctx := newTestContext()
	config.Override(ctx)
	assert.Equal(t, uint32(10), config.Get())

	// the first Override pins the value; later writes are not observed
	override := gild.BytesToBytes32([]byte{0, 42})
	ctx.state.SetStorage(ctx.Address(), config.Slot(), override)
	config.Override(ctx)
	assert.Equal(t, uint32(10), config.Get())
}

func TestConfigVariableOverride(t *testing.T) {
	_, ctx := newTestContext()

	config := NewConfigVariable("test", 10)
	ctx.state.SetStorage(ctx.Address(), config.Slot(), gild.BytesToBytes32([]byte{0, 99}))
	config.Override(ctx)
	assert.Equal(t, uint32(99), config.Get())
}

func TestConfigVariableBadStorage(t *testing.T) {
	_, ctx := newTestContext()

	config := NewConfigVariable("test", 10)
	ctx.state.SetRawStorage(ctx.Address(), config.Slot(), rlp.RawValue{0xFF})
	config.Override(ctx)
	assert.Equal(t, uint32(10), config.Get())

	// the failed read does not pin; a later valid value still lands
	ctx.state.SetStorage(ctx.Address(), config.Slot(), gild.BytesToBytes32([]byte{7}))
	config.Override(ctx)
	assert.Equal(t, uint32(7), config.Get())

	var be8 [8]byte
	binary.BigEndian.PutUint64(be8[:], 1<<40)
	fresh := NewConfigVariable("test2", 10)
	ctx.state.SetStorage(ctx.Address(), fresh.Slot(), gild.BytesToBytes32(be8[:]))

	fresh.Override(ctx)
	assert.Equal(t, uint32(0), fresh.Get())
}
