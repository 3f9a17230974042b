// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "javaclass",
	Short: "A Java classfile and module-image archive inspector",
	Long:  "javaclass decodes .class files and platform module-image (.jimage) archives for introspection, built for speed and clarity by Saferwall",
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(classCmd)
	rootCmd.AddCommand(jimageCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version number",
	Long:  "Print version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("You are using version 0.0.1")
	},
}
