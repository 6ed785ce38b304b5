package main

import sys "os"

type os struct{}

func (os) Exit(int) {}

func main() {
	var fake os
	fake.Exit(1)

	sys.Exit(1) // want "вызов os.Exit в функции main запрещён"
}
