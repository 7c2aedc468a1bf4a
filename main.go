package main

import (
	"github.com/umlgarden/umlgarden/cmd"
	"github.com/umlgarden/umlgarden/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
