package main

import "github.com/jfmoncada/plata/cmd"

func main() {
	cmd.Execute()
}
