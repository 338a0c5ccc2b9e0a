package main

import (
	"os"

	"github.com/emrgen/wiki/internal/server"
	"github.com/sirupsen/logrus"
)

func main() {
	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "4001"
	}

	if err := server.Start(httpPort); err != nil {
		logrus.Fatal(err)
	}
}
