package main

import "employeehub/internal/app/server"

func main() {
	server.Run()
}
