// cmd/main.go
package main

import (
	"wiser-api/app"
)

func main() {
	app.Run()
}
