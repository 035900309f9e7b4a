package main

import "inviteme_backend/internal/app"

func main() {
	app.Run()
}
