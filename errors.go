package dtlsd

import "errors"

var (
	errAlreadyListening = errors.New("dtlsd: engine already listening")
	errNotListening     = errors.New("dtlsd: engine not listening")
	errMaxSessions      = errors.New("dtlsd: max sessions reached")
)
