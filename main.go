package main

import "github.com/bmatsuo/nisp/cmd"

func main() {
	cmd.Execute()
}
