package main

import "github.com/khrees2412/recruiter/cmd"

func main() {
	cmd.Execute()
}
