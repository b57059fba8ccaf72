package main

import "github.com/ikkim/storefront/cmd/storefront/commands"

func main() {
	commands.Execute()
}
