// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/saferwall/javaclass/internal/diskcache"
	"github.com/saferwall/javaclass/internal/xlog"
	"github.com/saferwall/javaclass/jimage"
	"github.com/saferwall/javaclass/jimagex"
)

var jimageCmd = &cobra.Command{
	Use:   "jimage",
	Short: "Inspect a platform module image (.jimage) archive",
}

var jimageInfoCmd = &cobra.Command{
	Use:   "info <archive>",
	Short: "Print the archive header",
	Args:  cobra.ExactArgs(1),
	Run:   jimageInfo,
}

var jimageLsCmd = &cobra.Command{
	Use:   "ls <archive>",
	Short: "List every resource path in the archive, sorted",
	Args:  cobra.ExactArgs(1),
	Run:   jimageLs,
}

var jimageCatCmd = &cobra.Command{
	Use:   "cat <archive> <path>",
	Short: "Print a resource's decoded bytes to stdout",
	Args:  cobra.ExactArgs(2),
	Run:   jimageCat,
}

var jimageExtractCmd = &cobra.Command{
	Use:   "extract <archive> <path> <out>",
	Short: "Write a resource's decoded bytes to a file",
	Args:  cobra.ExactArgs(3),
	Run:   jimageExtract,
}

func init() {
	jimageCmd.AddCommand(jimageInfoCmd)
	jimageCmd.AddCommand(jimageLsCmd)
	jimageCmd.AddCommand(jimageCatCmd)
	jimageCmd.AddCommand(jimageExtractCmd)
}

func openArchive(path string) (*jimage.Archive, func() error) {
	opts := &jimage.Options{}
	if verbose {
		opts.Logger = xlog.NewStdLogger(os.Stderr)
	}
	archive, closeFn, err := jimage.Open(path, opts)
	if err != nil {
		log.Printf("error opening %s: %v", path, err)
		return nil, nil
	}
	return archive, closeFn
}

func jimageInfo(cmd *cobra.Command, args []string) {
	archive, closeFn := openArchive(args[0])
	if archive == nil {
		return
	}
	defer closeFn()
	fmt.Print(archive.Header().String())
}

func jimageLs(cmd *cobra.Command, args []string) {
	archive, closeFn := openArchive(args[0])
	if archive == nil {
		return
	}
	defer closeFn()

	var names []string
	it := archive.Resources()
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		if r.IsEmpty() {
			continue
		}
		names = append(names, r.FullName())
	}
	// Iteration is bucket order, not sorted; `ls` sorts its own
	// output rather than changing what the iterator promises.
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func jimageCat(cmd *cobra.Command, args []string) {
	archive, closeFn := openArchive(args[0])
	if archive == nil {
		return
	}
	defer closeFn()

	cache := diskcache.New(archive)
	r, ok := cache.ByName(args[1])
	if !ok {
		log.Printf("resource not found: %s", args[1])
		return
	}
	data, err := jimagex.Read(r)
	if err != nil {
		log.Printf("error reading resource: %v", err)
		return
	}
	os.Stdout.Write(data)
}

func jimageExtract(cmd *cobra.Command, args []string) {
	archive, closeFn := openArchive(args[0])
	if archive == nil {
		return
	}
	defer closeFn()

	r, ok := archive.ByName(args[1])
	if !ok {
		log.Printf("resource not found: %s", args[1])
		return
	}
	data, err := jimagex.Read(r)
	if err != nil {
		log.Printf("error reading resource: %v", err)
		return
	}
	if err := os.WriteFile(args[2], data, 0o644); err != nil {
		log.Printf("error writing %s: %v", args[2], err)
	}
}
