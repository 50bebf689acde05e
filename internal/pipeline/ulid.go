package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26-character Crockford Base32 strings with a
// millisecond timestamp prefix, so they sort by creation time.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// 48-bit big-endian timestamp in the first 6 bytes.
	for i := 0; i < 6; i++ {
		b[i] = byte(ts >> (40 - 8*i))
	}
	rand.Read(b[6:])
	// Overwrite bytes 6-7 with the sequence so IDs minted in the
	// same millisecond stay distinct.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeCrockford(b)
}

// encodeCrockford packs 128 bits into 26 base32 characters. The
// output is 130 bits wide, so the leading group carries only the top
// 3 bits of the input.
func encodeCrockford(b [16]byte) string {
	var out [26]byte
	bitPos := -2
	for i := 0; i < 26; i++ {
		var v byte
		for k := 0; k < 5; k++ {
			v <<= 1
			p := bitPos + k
			if p >= 0 {
				v |= (b[p/8] >> uint(7-p%8)) & 1
			}
		}
		out[i] = crockford[v]
		bitPos += 5
	}
	return string(out[:])
}
