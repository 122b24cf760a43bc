package main

import "github.com/fbsn11/team-management-app/internal/cli"

func main() {
	cli.Execute()
}
