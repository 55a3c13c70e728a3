package main

import "github.com/benjmnxu/ngram/cmd"

func main() {
	cmd.Execute()
}
