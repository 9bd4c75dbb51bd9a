package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker stats [flags] | worker snapshot get|clear <session>")
	}

	var err error
	switch os.Args[1] {
	case "stats":
		err = RunStats(os.Stdout, os.Args[2:])
	case "snapshot":
		err = RunSnapshot(os.Stdout, os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatal(err)
	}
}
