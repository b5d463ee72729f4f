// Command recordstore inspects and edits a record document from the shell.
//
//	recordstore -s patients.json insert '{"id":"p1","name":"Ana"}'
//	recordstore -s patients.json get p1
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
