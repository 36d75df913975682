package main

import (
	"log"
	"os"

	"github.com/yaytube/yay/di"
)

func main() {
	l := log.New(os.Stderr, "", 0)

	c := di.New(di.Config{Log: l})
	ses, err := c.Session()
	if err != nil {
		l.Fatalln(err)
	}
	defer c.Close()

	if err := ses.Run(); err != nil {
		l.Fatalln(err)
	}
}
