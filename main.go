package main

import "github.com/ByLCY/housebot/cmd"

func main() {
	cmd.Execute()
}
