package main

import "lr2immich/cmd"

func main() {
	cmd.Execute()
}
