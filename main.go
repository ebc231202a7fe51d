package main

import "vault-reconciler/cmd"

func main() {
	cmd.Execute()
}
