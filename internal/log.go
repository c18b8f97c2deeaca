package internal

import (
	"io"
	"log"
)

// SetupLogging routes the standard logger. Component logs go to w when
// verbose is set and are discarded otherwise, so stdout carries only the
// report summary.
func SetupLogging(w io.Writer, verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(w)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}
