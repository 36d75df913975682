//go:build !cgo
// +build !cgo

package lib

import (
	"log"

	"github.com/yaytube/yay/player"
)

func New(log *log.Logger) (p player.UnsupportedBackend) { return }
