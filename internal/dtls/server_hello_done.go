package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// ServerHelloDone marks the end of the server's Flight4 burst. It has no body.
type ServerHelloDone struct{}

func (ServerHelloDone) HandshakeType() HandshakeType { return HandshakeTypeServerHelloDone }

func (ServerHelloDone) Marshal(w *packet.Writer) {}

func DecodeServerHelloDone(r *packet.Reader) (ServerHelloDone, error) {
	if r.Remaining() != 0 {
		return ServerHelloDone{}, codecErrorf("server hello done: unexpected trailing %d bytes", r.Remaining())
	}
	return ServerHelloDone{}, nil
}
