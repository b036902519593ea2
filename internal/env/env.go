package env

import (
	"github.com/thatsimonsguy/tmr-alias/internal/config"
)

var Cfg *config.Config
