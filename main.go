package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("[FATAL RECOVER] %v\n%s", r, debug.Stack())
			log.Printf("[FATAL RECOVER] %v\n%s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	if err := newRootCmd(runOverlay).Execute(); err != nil {
		logger.Printf("[STARTUP] %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
