// cmd/fixture/main.go
package main

import (
	"log"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := newRootCmd().Execute(); err != nil {
		// step failures already printed their banner and signalled the fixture
		log.Fatalf("fixture: %v", err)
	}
}
