// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

// ReversePage returns up to count indexes of a sequence of the given length, newest first,
// skipping the offset newest ones. count is clamped to what remains after offset.
func ReversePage(length, count, offset uint64) []uint64 {
	if offset >= length {
		return []uint64{}
	}
	remaining := length - offset
	if count > remaining {
		count = remaining
	}
	indexes := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		indexes = append(indexes, length-1-offset-i)
	}
	return indexes
}
