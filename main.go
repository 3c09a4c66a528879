package main

import "github.com/hurou927/uml-ddl/cmd"

func main() {
	cmd.Execute()
}
