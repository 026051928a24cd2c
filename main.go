package main

import "github.com/saadjs/bmi-cli/cmd/bmi"

func main() {
	bmi.Execute()
}
