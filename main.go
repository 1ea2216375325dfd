package main

import "github.com/nikogura/cover-tailor/cmd"

func main() {
	cmd.Execute()
}
