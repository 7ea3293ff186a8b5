package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/ejay-detera/orgspace/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
