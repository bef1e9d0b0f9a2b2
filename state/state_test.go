// Copyright (c) 2025 The GildCoin developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/GildCoinDev/gild-crypto/gild"
	"github.com/GildCoinDev/gild-crypto/kv"
	"github.com/GildCoinDev/gild-crypto/test/datagen"
)

func TestStorage(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	key := gild.BytesToBytes32([]byte("key"))
	value := gild.BytesToBytes32([]byte("value"))

	got, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, gild.Bytes32{}, got)

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)

	// setting zero clears the slot
	st.SetStorage(addr, key, gild.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.Nil(t, err)
	assert.Zero(t, len(raw))
}

func TestStorageBarelyEncoded(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	key := gild.BytesToBytes32([]byte("key"))

	// a value with leading zeros survives the trimmed encoding
	value := gild.BytesToBytes32([]byte{1})
	st.SetStorage(addr, key, value)

	raw, err := st.GetRawStorage(addr, key)
	assert.Nil(t, err)
	expected, _ := rlp.EncodeToBytes([]byte{1})
	assert.Equal(t, rlp.RawValue(expected), raw)

	got, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)
}

func TestStorageListValue(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	key := gild.BytesToBytes32([]byte("key"))

	// structured values stored as rlp lists read back as the hash of raw
	raw, _ := rlp.EncodeToBytes([]any{[]byte("a"), []byte("b")})
	st.SetRawStorage(addr, key, raw)

	got, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, gild.Blake2b(raw), got)
}

func TestEncodeDecodeStorage(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	key := gild.BytesToBytes32([]byte("key"))

	type position struct {
		Principal uint64
		Boost     uint8
	}

	saved := position{Principal: 320, Boost: 15}
	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&saved)
	})
	assert.Nil(t, err)

	var loaded position
	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &loaded)
	})
	assert.Nil(t, err)
	assert.Equal(t, saved, loaded)

	// decoder sees an empty raw value for unset slots
	var visited []byte = []byte{0xff}
	err = st.DecodeStorage(addr, gild.BytesToBytes32([]byte("unset")), func(raw []byte) error {
		visited = raw
		return nil
	})
	assert.Nil(t, err)
	assert.Zero(t, len(visited))
}

func TestEncodeStorageError(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	encErr := errors.New("enc failed")
	err := st.EncodeStorage(gild.Address{}, gild.Bytes32{}, func() ([]byte, error) {
		return nil, encErr
	})

	var stateErr *Error
	assert.True(t, errors.As(err, &stateErr))
}

func TestCheckpointRevert(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	k1 := gild.BytesToBytes32([]byte("k1"))
	k2 := gild.BytesToBytes32([]byte("k2"))
	v1 := gild.BytesToBytes32([]byte("v1"))
	v2 := gild.BytesToBytes32([]byte("v2"))

	st.SetStorage(addr, k1, v1)

	chk := st.NewCheckpoint()
	st.SetStorage(addr, k1, v2)
	st.SetStorage(addr, k2, v2)

	st.RevertTo(chk)

	got, err := st.GetStorage(addr, k1)
	assert.Nil(t, err)
	assert.Equal(t, v1, got)

	got, err = st.GetStorage(addr, k2)
	assert.Nil(t, err)
	assert.Equal(t, gild.Bytes32{}, got)
}

func TestNestedCheckpoints(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	key := gild.BytesToBytes32([]byte("key"))

	chk0 := st.NewCheckpoint()
	st.SetStorage(addr, key, gild.BytesToBytes32([]byte{1}))

	chk1 := st.NewCheckpoint()
	st.SetStorage(addr, key, gild.BytesToBytes32([]byte{2}))

	st.RevertTo(chk1)
	got, _ := st.GetStorage(addr, key)
	assert.Equal(t, gild.BytesToBytes32([]byte{1}), got)

	st.RevertTo(chk0)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, gild.Bytes32{}, got)
}

// exercises random writes and checkpoint reverts against a naive
// reference implementation.
func TestStorageRandom(t *testing.T) {
	store, _ := kv.NewMem()
	st := NewStater(store).NewState()

	addr := gild.BytesToAddress([]byte("addr"))
	keyOf := func(n int) gild.Bytes32 {
		return gild.BytesToBytes32([]byte{byte(n)})
	}

	type op struct {
		Name string
		Key  int
		Val  gild.Bytes32
	}

	var (
		ops         []op
		checkpoints []int
		levels      = []map[int]gild.Bytes32{{}}
	)
	lookup := func(key int) gild.Bytes32 {
		for i := len(levels) - 1; i >= 0; i-- {
			if v, ok := levels[i][key]; ok {
				return v
			}
		}
		return gild.Bytes32{}
	}

	for i := 0; i < 5000; i++ {
		switch n := rand.IntN(10); {
		case n < 4:
			o := op{"set", rand.IntN(30), datagen.RandomHash()}
			ops = append(ops, o)
			st.SetStorage(addr, keyOf(o.Key), o.Val)
			levels[len(levels)-1][o.Key] = o.Val
		case n < 5:
			o := op{Name: "clear", Key: rand.IntN(30)}
			ops = append(ops, o)
			st.SetStorage(addr, keyOf(o.Key), gild.Bytes32{})
			levels[len(levels)-1][o.Key] = gild.Bytes32{}
		case n < 7:
			ops = append(ops, op{Name: "checkpoint"})
			checkpoints = append(checkpoints, st.NewCheckpoint())
			levels = append(levels, map[int]gild.Bytes32{})
		case n < 8 && len(checkpoints) > 0:
			ops = append(ops, op{Name: "revert"})
			st.RevertTo(checkpoints[len(checkpoints)-1])
			checkpoints = checkpoints[:len(checkpoints)-1]
			levels = levels[:len(levels)-1]
		default:
			o := op{Name: "get", Key: rand.IntN(30)}
			ops = append(ops, o)
			got, err := st.GetStorage(addr, keyOf(o.Key))
			if err != nil {
				t.Fatal(err)
			}
			if want := lookup(o.Key); got != want {
				t.Fatalf("random test diverged at step %d: got %v want %v\nops: %s",
					i, got, want, spew.Sdump(ops))
			}
		}
	}
}
