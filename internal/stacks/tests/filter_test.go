// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// DetectedStack filtering tests

package tests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/stackscan/internal/stacks"
)

func result(name string, confidence int) stacks.DetectionResult {
	return stacks.DetectionResult{Name: name, Confidence: confidence, Evidence: []string{"signal"}}
}

func ptr(r stacks.DetectionResult) *stacks.DetectionResult {
	return &r
}

func sampleStack() *stacks.DetectedStack {
	return &stacks.DetectedStack{
		Framework:      ptr(result("Next.js", 90)),
		PackageManager: ptr(result("npm", 30)),
		Testing: &stacks.TestingStack{
			Unit: ptr(result("Vitest", 50)),
			E2E:  ptr(result("Cypress", 45)),
		},
		API:        []stacks.DetectionResult{result("REST", 40), result("tRPC", 70)},
		Deployment: []stacks.DetectionResult{result("Docker", 50)},
		MCP: &stacks.MCPStack{
			Detected:    []stacks.DetectionResult{result("weak", 10)},
			Recommended: []string{"filesystem"},
		},
	}
}

func TestFilter_DropsBelowThreshold(t *testing.T) {
	out := sampleStack().Filter(60)

	require.NotNil(t, out.Framework)
	assert.Nil(t, out.PackageManager)
	assert.Nil(t, out.Testing)
	require.Len(t, out.API, 1)
	assert.Equal(t, "tRPC", out.API[0].Name)
	assert.Nil(t, out.Deployment)
}

func TestFilter_TestingKeepsSurvivingSlot(t *testing.T) {
	out := sampleStack().Filter(48)
	require.NotNil(t, out.Testing)
	assert.NotNil(t, out.Testing.Unit)
	assert.Nil(t, out.Testing.E2E)
}

func TestFilter_MCPPassthrough(t *testing.T) {
	out := sampleStack().Filter(95)
	require.NotNil(t, out.MCP)
	require.Len(t, out.MCP.Detected, 1)
	assert.Equal(t, 10, out.MCP.Detected[0].Confidence)
	assert.Equal(t, []string{"filesystem"}, out.MCP.Recommended)
}

func TestFilter_Idempotent(t *testing.T) {
	for _, min := range []int{0, 1, 40, 45, 60, 95, 100} {
		once := sampleStack().Filter(min)
		twice := once.Filter(min)
		assert.Equal(t, once, twice, "min=%d", min)
	}
}

func TestFilter_NoEmptyArrays(t *testing.T) {
	for _, min := range []int{0, 41, 71, 100} {
		out := sampleStack().Filter(min)
		for _, c := range stacks.AllCategories() {
			if c.Policy() != stacks.PolicyMulti {
				continue
			}
			values := out.Multi(c)
			if values == nil {
				continue
			}
			assert.NotEmpty(t, values, "category %s at min %d", c, min)
			for _, v := range values {
				assert.GreaterOrEqual(t, v.Confidence, min)
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sampleStack()
	_ = in.Filter(100)
	assert.Len(t, in.API, 2)
	assert.NotNil(t, in.PackageManager)
}

func TestFilter_NilStack(t *testing.T) {
	var s *stacks.DetectedStack
	out := s.Filter(40)
	require.NotNil(t, out)
	assert.True(t, out.IsEmpty())
}

func TestDetectedStack_EmptyJSON(t *testing.T) {
	data, err := json.Marshal(&stacks.DetectedStack{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = json.Marshal(sampleStack().Filter(100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcp": {"detected": [{"name": "weak", "confidence": 10, "evidence": ["signal"]}], "recommended": ["filesystem"]}}`, string(data))
}

func TestCategory_Policies(t *testing.T) {
	multi := map[stacks.Category]bool{
		stacks.CategoryAPI:          true,
		stacks.CategoryUIComponents: true,
		stacks.CategoryFormHandling: true,
		stacks.CategoryAnalytics:    true,
		stacks.CategoryDeployment:   true,
	}
	for _, c := range stacks.AllCategories() {
		switch {
		case c == stacks.CategoryTesting:
			assert.Equal(t, stacks.PolicyTesting, c.Policy())
		case c == stacks.CategoryMCP:
			assert.Equal(t, stacks.PolicyMCP, c.Policy())
		case multi[c]:
			assert.Equal(t, stacks.PolicyMulti, c.Policy(), c)
		default:
			assert.Equal(t, stacks.PolicySingle, c.Policy(), c)
		}
		assert.NotEmpty(t, c.Label())
		assert.True(t, c.Valid())
	}
	assert.False(t, stacks.Category("nope").Valid())
	assert.Equal(t, "multi", stacks.PolicyMulti.String())
}
