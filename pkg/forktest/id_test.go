package forktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_DistinctAcrossCallSites(t *testing.T) {
	first := NewID()
	second := NewID()

	require.NotEqual(t, first, second)
}

func TestNewID_StableAtOneCallSite(t *testing.T) {
	ids := make([]ID, 0, 5)
	for range 5 {
		ids = append(ids, NewID())
	}

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
}

func TestID_StringIsFixedWidthHex(t *testing.T) {
	id := ID(0xdeadbeef)

	assert.Equal(t, "00000000deadbeef", id.String())
	assert.Len(t, ID(0).String(), 16)
}

func TestEncodeSelection_DistinguishesSameNamedRegistrations(t *testing.T) {
	a := encodeSelection(ID(1), "TestDuplicate")
	b := encodeSelection(ID(2), "TestDuplicate")

	require.NotEqual(t, a, b)
	assert.Equal(t, "0000000000000001:TestDuplicate", a)
}
