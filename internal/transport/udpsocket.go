// Package transport provides the default dtls.Socket implementation: a
// plain UDP listener wrapped in an x/net/ipv4 PacketConn, the same pairing
// the mDNS client under internal/ice used for multicast tuning. Here it is
// used only to read datagrams; the kernel buffer sizes are set on the
// underlying UDP conn.
package transport

import (
	"net"

	"golang.org/x/net/ipv4"

	"github.com/lanikai/dtlsd/internal/logging"
)

var log = logging.DefaultLogger.WithTag("transport.udp")

// recvBufferBytes and sendBufferBytes widen the kernel socket buffers so a
// burst of concurrent handshakes (each emitting up to five records) doesn't
// drop datagrams under load.
const (
	recvBufferBytes = 1 << 20
	sendBufferBytes = 1 << 20
)

// UDPSocket implements dtls.Socket over a bound UDP4 listener.
type UDPSocket struct {
	conn  *net.UDPConn
	pconn *ipv4.PacketConn
}

// Listen binds a UDP4 socket at addr (e.g. ":4433").
func Listen(addr string) (*UDPSocket, error) {
	laddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp4", laddr)
	if err != nil {
		return nil, err
	}

	pconn := ipv4.NewPacketConn(conn)
	if err := conn.SetReadBuffer(recvBufferBytes); err != nil {
		log.Warn("setting read buffer size: %v", err)
	}
	if err := conn.SetWriteBuffer(sendBufferBytes); err != nil {
		log.Warn("setting write buffer size: %v", err)
	}

	return &UDPSocket{conn: conn, pconn: pconn}, nil
}

// RecvFrom reads one datagram into buf.
func (s *UDPSocket) RecvFrom(buf []byte) (int, net.Addr, error) {
	n, _, addr, err := s.pconn.ReadFrom(buf)
	return n, addr, err
}

// SendTo writes b as one datagram to addr.
func (s *UDPSocket) SendTo(b []byte, addr net.Addr) error {
	_, err := s.conn.WriteTo(b, addr)
	return err
}

// LocalAddr reports the bound local address.
func (s *UDPSocket) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Close releases the underlying socket.
func (s *UDPSocket) Close() error {
	return s.conn.Close()
}
