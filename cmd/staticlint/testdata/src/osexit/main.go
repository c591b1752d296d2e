package main

import (
	"fmt"
	stdos "os"
)

func main() {
	fmt.Println("start")
	defer fmt.Println("stop")
	stdos.Exit(1) // want "avoid direct os.Exit call in main function of main package"
}

func helper() {
	stdos.Exit(2)
}

type runner struct{}

func (runner) main() {
	stdos.Exit(3)
}
