package main

import (
	"github.com/mj1618/uisoup/cmd"
	_ "github.com/mj1618/uisoup/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
