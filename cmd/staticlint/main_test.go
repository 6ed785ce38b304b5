package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis"
)

func TestAnalyzers(t *testing.T) {
	list := analyzers()

	names := make(map[string]bool, len(list))
	for _, a := range list {
		assert.NoError(t, analysis.Validate([]*analysis.Analyzer{a}), a.Name)
		names[a.Name] = true
	}

	for _, want := range []string{"SA1000", "S1000", "U1000", "bodyclose", "noexit", "shadow", "copylocks"} {
		assert.True(t, names[want], want)
	}
}
