package shutdown

import (
	"os"

	"github.com/rs/zerolog/log"
)

// Exit is swapped out by tests.
var Exit = os.Exit

// ShutdownWithError reports a failed build step and exits non-zero, so a
// bad configuration stops the build before anything is compiled.
func ShutdownWithError(err error, msg string) {
	log.Error().Err(err).Msg(msg)
	Exit(1)
}
