package main

import (
	"os"

	skalacmder "github.com/skalacodebr/chatgpt-skala/cmd/skala"
)

func main() {
	cmd := skalacmder.NewSkalaCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
