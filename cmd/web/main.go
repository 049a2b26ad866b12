package main

import "refhub_backend/internal/app"

func main() {
	app.Run()
}
