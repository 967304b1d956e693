package main

import (
	"fmt"
	"os"

	"github.com/jlfs-dev/picshare/cmd/cli/auth"
	"github.com/jlfs-dev/picshare/cmd/cli/root"
	"github.com/jlfs-dev/picshare/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	users.InitUsers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
