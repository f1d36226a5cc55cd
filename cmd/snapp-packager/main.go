package main

import "snapp-packager/cmd/snapp-packager/cmd"

func main() {
	cmd.Execute()
}
