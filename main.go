package main

import (
	"github.com/minichain/minichain/cmd/minichain"
)

func main() {
	minichain.Execute()
}
