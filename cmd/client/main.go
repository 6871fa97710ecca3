package main

import "moneytracker/cmd/client/cmd"

func main() {
	cmd.Execute()
}
