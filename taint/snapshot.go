/*
 * snapshot.go, part of gochem.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package taint

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/klauspost/compress/zstd"
)

// snapshotMagic starts every uncompressed snapshot payload.
var snapshotMagic = [4]byte{'T', 'N', 'T', '1'}

// Snapshot returns a compressed checkpoint of every category set. The
// enabled flag is stored too, so Restore gives back an identical table.
func (T *Table) Snapshot() ([]byte, error) {
	var raw bytes.Buffer
	raw.Write(snapshotMagic[:])
	if T.enabled {
		raw.WriteByte(1)
	} else {
		raw.WriteByte(0)
	}
	for c := Category(0); c < NumCategories; c++ {
		set := T.sets[c]
		if set == nil || !set.Any() {
			raw.WriteByte(0)
			continue
		}
		b, err := set.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("taint: marshaling %s: %w", c, err)
		}
		raw.WriteByte(1)
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(b)))
		raw.Write(l[:])
		raw.Write(b)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("taint: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw.Bytes(), nil), nil
}

// Restore replaces the table contents with a checkpoint produced by
// Snapshot. On error the table is left untouched.
func (T *Table) Restore(data []byte) error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("taint: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("taint: decompressing snapshot: %w", err)
	}
	if len(raw) < len(snapshotMagic)+1 || !bytes.Equal(raw[:4], snapshotMagic[:]) {
		return fmt.Errorf("taint: not a taint snapshot")
	}
	enabled := raw[4] == 1
	raw = raw[5:]
	var sets [NumCategories]*bitset.BitSet
	for c := Category(0); c < NumCategories; c++ {
		if len(raw) < 1 {
			return fmt.Errorf("taint: truncated snapshot at %s", c)
		}
		present := raw[0]
		raw = raw[1:]
		if present == 0 {
			continue
		}
		if len(raw) < 4 {
			return fmt.Errorf("taint: truncated snapshot at %s", c)
		}
		l := int(binary.LittleEndian.Uint32(raw[:4]))
		raw = raw[4:]
		if len(raw) < l {
			return fmt.Errorf("taint: truncated snapshot at %s", c)
		}
		set := new(bitset.BitSet)
		if err := set.UnmarshalBinary(raw[:l]); err != nil {
			return fmt.Errorf("taint: unmarshaling %s: %w", c, err)
		}
		sets[c] = set
		raw = raw[l:]
	}
	T.enabled = enabled
	T.sets = sets
	return nil
}
