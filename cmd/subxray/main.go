package main

import (
	// Register plugins via side-effects
	_ "github.com/saniyar-dev/subxray/internal/sink/file"
	_ "github.com/saniyar-dev/subxray/internal/sink/stdout"
	_ "github.com/saniyar-dev/subxray/internal/subscription/file"
	_ "github.com/saniyar-dev/subxray/internal/subscription/http"
)

func main() {
	Execute()
}
