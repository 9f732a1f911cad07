package main

import "github.com/tkadlec/rollcall/cmd"

func main() {
	cmd.Execute()
}
