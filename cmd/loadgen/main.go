package main

import (
	"log"

	tool "github.com/sandeepkv93/fraudguard/internal/tools/loadgen"
)

func main() {
	if err := tool.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
