// cmd/circanno/main.go
package main

import (
	"circanno/internal/app"
	"circanno/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
