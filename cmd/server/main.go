package main

import "kraeval/internal/app/server"

func main() {
	server.Run()
}
