// Package main hosts the photorganiser CLI entrypoint and command graph.
//
// The root command is the organise pass itself: it confirms the chosen
// directory, runs the preflight checks, and hands off to the organizer
// package. Subcommands cover configuration scaffolding, dependency checks,
// and browsing the run journal.
package main
