// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/saferwall/javaclass/classfile"
	"github.com/saferwall/javaclass/internal/xlog"
)

func prettyPrint(v interface{}) string {
	buff, err := json.Marshal(v)
	if err != nil {
		log.Printf("JSON marshal error: %v", err)
		return ""
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buff, "", "\t"); err != nil {
		log.Printf("JSON indent error: %v", err)
		return string(buff)
	}
	return pretty.String()
}

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Inspect a .class file",
	Long:  "Decode and print the structure of a single Java .class file",
}

var classDumpCmd = &cobra.Command{
	Use:   "dump <path>",
	Short: "Dump a classfile's constant pool, fields, and methods",
	Args:  cobra.ExactArgs(1),
	Run:   dumpClass,
}

func init() {
	classCmd.AddCommand(classDumpCmd)
}

type classDump struct {
	ClassName      string   `json:"class_name"`
	SuperClassName string   `json:"super_class_name,omitempty"`
	AccessFlags    uint16   `json:"access_flags"`
	Fields         []member `json:"fields"`
	Methods        []member `json:"methods"`
}

type member struct {
	Name        string `json:"name"`
	Descriptor  string `json:"descriptor"`
	AccessFlags uint16 `json:"access_flags"`
}

func dumpClass(cmd *cobra.Command, args []string) {
	path := args[0]

	opts := &classfile.Options{}
	if verbose {
		opts.Logger = xlog.NewStdLogger(os.Stderr)
	}

	cf, closeFn, err := classfile.OpenFile(path, opts)
	if err != nil {
		log.Printf("error opening %s: %v", path, err)
		return
	}
	defer closeFn()

	className, err := cf.ClassName()
	if err != nil {
		log.Printf("error resolving class name: %v", err)
		return
	}

	dump := classDump{
		ClassName:   className,
		AccessFlags: uint16(cf.AccessFlags),
	}
	if super, ok, err := cf.SuperClassName(); err != nil {
		log.Printf("error resolving super class name: %v", err)
	} else if ok {
		dump.SuperClassName = super
	}
	for _, f := range cf.Fields {
		name, _ := cf.FieldName(f)
		desc, _ := cf.FieldDescriptor(f)
		dump.Fields = append(dump.Fields, member{Name: name, Descriptor: desc, AccessFlags: uint16(f.AccessFlags)})
	}
	for _, m := range cf.Methods {
		name, _ := cf.MethodName(m)
		desc, _ := cf.MethodDescriptor(m)
		dump.Methods = append(dump.Methods, member{Name: name, Descriptor: desc, AccessFlags: uint16(m.AccessFlags)})
	}

	fmt.Println(prettyPrint(dump))
}
