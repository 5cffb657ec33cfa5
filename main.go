package main

import "github.com/gaurav-prasanna/pinpipe/cmd"

func main() {
	cmd.Execute()
}
