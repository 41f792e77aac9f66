package main

import "github.com/tuannm99/novakb/cmd/kbtool/cmd"

func main() {
	cmd.Execute()
}
