package main

import "github.com/redactyl/guardscan/cmd/guardscan"

func main() { guardscan.Execute() }
