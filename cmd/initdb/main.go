// Command initdb creates a TagBox SQLite database from a SQL schema script
// and verifies the result.
package main

import "os"

func main() {
	os.Exit(New(os.Stdout, os.Stderr).Execute(os.Args[1:]))
}
