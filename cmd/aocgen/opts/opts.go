package opts

import (
	"github.com/walteh/aocgen/pkg/config"
	"github.com/walteh/aocgen/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Console *log.Logger
}
