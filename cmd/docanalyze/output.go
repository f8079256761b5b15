package main

import (
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	titleColor   = color.New(color.FgMagenta, color.Bold)
	keyColor     = color.New(color.FgBlue)
)

// Status lines go to stderr so stdout carries only the JSON result.

func PrintSuccess(format string, args ...interface{}) {
	successColor.Fprintf(color.Error, "✅ "+format+"\n", args...)
}

func PrintError(format string, args ...interface{}) {
	errorColor.Fprintf(color.Error, "❌ "+format+"\n", args...)
}

func PrintWarning(format string, args ...interface{}) {
	warningColor.Fprintf(color.Error, "⚠️  "+format+"\n", args...)
}

func PrintInfo(format string, args ...interface{}) {
	infoColor.Fprintf(color.Error, "ℹ️  "+format+"\n", args...)
}

func PrintTitle(format string, args ...interface{}) {
	titleColor.Fprintf(color.Error, "🎯 "+format+"\n", args...)
}

func PrintKeyValue(key, value string) {
	keyColor.Fprintf(color.Error, "  %-20s", key)
	color.New().Fprintln(color.Error, value)
}
