package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	value uint64
	ref   *uint64
	flags [4]uint32
}

func TestNewIsZeroed(t *testing.T) {
	b, err := New[record]()
	require.NoError(t, err)
	defer b.Free()

	r := b.Value()
	require.NotNil(t, r)
	assert.Zero(t, r.value)
	assert.Nil(t, r.ref)
	assert.Equal(t, [4]uint32{}, r.flags)
	assert.Equal(t, unsafe.Sizeof(record{}), b.Size())
}

func TestSelfReference(t *testing.T) {
	b, err := New[record]()
	require.NoError(t, err)
	defer b.Free()

	r := b.Value()
	r.value = 42
	r.ref = &r.value

	again := b.Value()
	assert.Same(t, r, again)
	assert.Equal(t, uint64(42), *again.ref)
	assert.Equal(t, uintptr(unsafe.Pointer(&again.value)), uintptr(unsafe.Pointer(again.ref)))
}

func TestFreeIsIdempotent(t *testing.T) {
	b, err := New[record]()
	require.NoError(t, err)

	require.NoError(t, b.Free())
	require.NoError(t, b.Free())
	assert.Nil(t, b.Value())
}

func TestDistinctBlocks(t *testing.T) {
	a, err := New[record]()
	require.NoError(t, err)
	defer a.Free()
	b, err := New[record]()
	require.NoError(t, err)
	defer b.Free()

	assert.NotEqual(t, uintptr(unsafe.Pointer(a.Value())), uintptr(unsafe.Pointer(b.Value())))
}
