package main

import "github.com/localgit/localgit/cmd"

func main() {
	cmd.Execute()
}
