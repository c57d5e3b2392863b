package main

import "github.com/frahmantamala/smartexpense/cmd"

func main() {
	cmd.Execute()
}
