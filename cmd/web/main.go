package main

import "github.com/dsaidinesh/influencerflow/internal/app"

func main() {
	app.Run()
}
