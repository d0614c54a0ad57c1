package main

import "alcyxob/fitness-planner/internal/cli"

func main() {
	cli.Execute()
}
