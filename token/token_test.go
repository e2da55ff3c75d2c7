// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", true},
		{"7567d83b7b8d80addcb281a71d54fc7b3364ffed", true},
		{"0X7567D83B7B8D80ADDCB281A71D54FC7B3364FFED", true},
		{"1x7567d83b7b8d80addcb281a71d54fc7b3364ffed", false},
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ff", false},
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffzz", false},
	}
	for _, tt := range tests {
		_, err := ParseAddress(tt.in)
		if tt.valid {
			assert.NoError(t, err, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("alice"))

	data, err := json.Marshal(struct{ A Address }{addr})
	require.NoError(t, err)
	assert.Equal(t, `{"A":"`+addr.String()+`"}`, string(data))

	var decoded struct{ A Address }
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded.A)
	assert.False(t, decoded.A.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestBytes32JSON(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	require.NoError(t, json.Unmarshal([]byte(originalHex), &b))
	assert.Equal(t, BytesToBytes32([]byte("master")), b)

	out, err := json.Marshal(&b)
	require.NoError(t, err)
	assert.Equal(t, originalHex, string(out))
}

func TestBlake2b(t *testing.T) {
	data := []byte("ledger")
	assert.Equal(t, Blake2b(data), Blake2b(data[:3], data[3:]))
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
}

func TestApplyBasisPoints(t *testing.T) {
	tests := []struct {
		amount   int64
		bp       uint64
		expected int64
	}{
		{200, 200, 4},
		{199, 200, 3},
		{1000, DistributionLockBasisPoints, 800},
		{1, 9999, 0},
		{0, 5000, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, big.NewInt(tt.expected), ApplyBasisPoints(big.NewInt(tt.amount), tt.bp))
	}
}

func TestDeadline(t *testing.T) {
	tests := []struct {
		now, duration, expected uint64
	}{
		{100, 50, 150},
		{100, 0, 100},
		{0, math.MaxUint64, math.MaxUint64},
		{100, math.MaxUint64, math.MaxUint64},
		{math.MaxUint64 - 1, 1, math.MaxUint64},
		{math.MaxUint64 - 1, 2, math.MaxUint64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Deadline(tt.now, tt.duration))
	}
}
