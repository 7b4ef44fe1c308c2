package main

import (
	"github.com/mash-protocol/mash-text/cmd/mash-timefmt/interactive"
)

func runInteractive(args []string) error {
	var cf commonFlags
	fs := newFlagSet("interactive", &cf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, err := cf.context()
	if err != nil {
		return err
	}

	session, err := interactive.New(ctx)
	if err != nil {
		return err
	}
	return session.Run()
}
