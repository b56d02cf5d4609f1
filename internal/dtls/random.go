package dtls

import (
	"crypto/rand"
	"time"

	"github.com/lanikai/dtlsd/internal/packet"
)

// RandomLength is the fixed wire size of a Random: gmt_unix_time (4) +
// random_bytes (28).
const RandomLength = 32

// Random is the 32-byte nonce exchanged in ClientHello/ServerHello.
type Random struct {
	GMTUnixTime uint32
	RandomBytes [28]byte
}

// NewRandom generates a Random using the current time and crypto/rand.
func NewRandom() (Random, error) {
	var r Random
	r.GMTUnixTime = uint32(time.Now().Unix())
	if _, err := rand.Read(r.RandomBytes[:]); err != nil {
		return r, cryptoErrorf("generating random: %v", err)
	}
	return r, nil
}

func (r Random) Marshal(w *packet.Writer) {
	w.WriteUint32(r.GMTUnixTime)
	w.WriteSlice(r.RandomBytes[:])
}

// Bytes returns the 32-byte wire encoding of r.
func (r Random) Bytes() [32]byte {
	var out [32]byte
	w := packet.NewWriterSize(RandomLength)
	r.Marshal(w)
	copy(out[:], w.Bytes())
	return out
}

func decodeRandom(r *packet.Reader) (Random, error) {
	var rnd Random
	var err error
	if rnd.GMTUnixTime, err = r.ReadUint32(); err != nil {
		return rnd, codecErrorf("random: %v", err)
	}
	b, err := r.ReadSlice(28)
	if err != nil {
		return rnd, codecErrorf("random: %v", err)
	}
	copy(rnd.RandomBytes[:], b)
	return rnd, nil
}
