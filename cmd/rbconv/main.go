package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Cmd.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
