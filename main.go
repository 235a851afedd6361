package main

import (
	"github.com/pmkol/slist/coremain"
	"github.com/pmkol/slist/mlog"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.S().Fatal(err)
	}
}
