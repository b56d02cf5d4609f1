package dtls

import "github.com/pkg/errors"

// Error kinds. Codec and Protocol errors on inbound traffic cause the
// offending datagram to be dropped silently by the dispatcher. Crypto errors
// are handled the same way: the datagram is dropped and the session keeps
// its current state; nothing in this package moves a session to Failed. A
// socket send error is logged and ends the outbound burst it interrupted;
// the session is not torn down.

// IsCodecError reports whether err originated from record/handshake parsing.
func IsCodecError(err error) bool {
	return errors.Cause(err) == errCodec
}

// IsProtocolError reports whether err originated from handshake state-machine
// validation (cookie mismatch, unsupported cipher suite, out-of-order message).
func IsProtocolError(err error) bool {
	return errors.Cause(err) == errProtocol
}

// IsCryptoError reports whether err originated from signing or key agreement.
func IsCryptoError(err error) bool {
	return errors.Cause(err) == errCrypto
}

var (
	errCodec    = errors.New("dtls: codec error")
	errProtocol = errors.New("dtls: protocol error")
	errCrypto   = errors.New("dtls: crypto error")
)

func codecErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(errCodec, format, args...)
}

func protocolErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(errProtocol, format, args...)
}

func cryptoErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(errCrypto, format, args...)
}
