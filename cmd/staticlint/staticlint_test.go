package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestOsExitAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), OsExitAnalyzer, "osexit", "notmain")
}

func TestStateMutationAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), StateMutationAnalyzer,
		"example.com/app/internal/workflow",
		"example.com/app/internal/handler",
	)
}

func TestAnalyzersSet(t *testing.T) {
	names := make(map[string]int)
	for _, a := range analyzers() {
		names[a.Name]++
	}

	for name, n := range names {
		assert.Equal(t, 1, n, "analyzer %s registered more than once", name)
	}
	for _, name := range []string{"osexit", "statemut", "errcheck", "ruleguard", "SA1000", "S1000", "ST1005"} {
		assert.Contains(t, names, name)
	}
	for name := range disabledChecks {
		assert.NotContains(t, names, name)
	}
	assert.NotContains(t, names, "fieldalignment")
}
