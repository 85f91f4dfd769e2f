package main

import (
	"github.com/fatih/color"
)

var (
	white = color.New(color.FgHiWhite).SprintFunc()
	green = color.New(color.FgHiGreen).SprintFunc()
	red   = color.New(color.FgHiRed).SprintFunc()

	header = color.New(color.FgHiCyan).SprintFunc()
	prompt = color.New(color.FgHiYellow).SprintFunc()
	digest = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func reqColor(required ...interface{}) string {
	var s string
	for i := 0; i < len(required); i++ {
		s += " <"
		s += white(required[i])
		s += ">"
	}
	return s
}

func optColor(optional ...interface{}) string {
	var s string
	var tail string
	for i := 0; i < len(optional); i++ {
		s += " [<"
		s += white(optional[i])
		s += ">"
		tail += "]"
	}
	return s + tail
}
